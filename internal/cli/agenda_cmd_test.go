package cli

import (
	"testing"

	"github.com/jra3/orgmind/internal/agenda"
	"github.com/jra3/orgmind/internal/orgast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriorityArg(t *testing.T) {
	p, err := parsePriorityArg("A")
	require.NoError(t, err)
	assert.Equal(t, orgast.PriorityA, p)

	_, err = parsePriorityArg("Z")
	assert.Error(t, err)
}

func TestPrintAgendaViewNoItemsPlain(t *testing.T) {
	assert.NoError(t, printAgendaView("plain", "/notes", agenda.View{}))
}

func TestPrintAgendaViewJSON(t *testing.T) {
	from, to := "2025-06-01", "2025-06-10"
	view := agenda.View{
		StartDate: &from,
		EndDate:   &to,
		Items:     []agenda.Item{{FilePath: "agenda.org", Heading: "Ship the release"}},
	}
	assert.NoError(t, printAgendaView("json", "/notes", view))
}
