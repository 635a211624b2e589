package browse

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackzampolin/pokedex/internal/api"
	"github.com/jackzampolin/pokedex/internal/pokemon"
)

func TestDetailController_Load(t *testing.T) {
	svc := newFakeService(0)
	svc.chains["25"] = []pokemon.Stage{
		{{ID: 172, Name: "pichu"}},
		{{ID: 25, Name: "pikachu"}},
		{{ID: 26, Name: "raichu"}},
	}
	ctrl := NewDetailController(svc, nil)
	assert.Equal(t, StatusIdle, ctrl.View().Status)

	ctrl.Load(context.Background(), "25")

	view := ctrl.View()
	assert.Equal(t, StatusSuccess, view.Status)
	assert.Equal(t, "25", view.ID)
	require.NotNil(t, view.Record)
	assert.Equal(t, "record-25", view.Record.Name)
	assert.Len(t, view.Stages, 3)
	assert.Nil(t, view.Notice())
}

func TestDetailController_Failure(t *testing.T) {
	svc := newFakeService(0)
	ctrl := NewDetailController(svc, nil)
	ctrl.Load(context.Background(), "1")
	require.NotNil(t, ctrl.View().Record)

	svc.setFailure(api.ServerFailure(404, "Pokémon not found", api.SeverityWarning))
	ctrl.Load(context.Background(), "2")

	view := ctrl.View()
	assert.Equal(t, StatusFailed, view.Status)
	assert.Nil(t, view.Record, "a different id drops the previous record")
	require.NotNil(t, view.Notice())
	assert.Equal(t, "Pokémon not found", view.Notice().Message)
	assert.Equal(t, api.SeverityWarning, view.Notice().Severity)
	assert.Contains(t, view.Text(), "Pokémon not found")
}

func TestDetailController_DiscardsSupersededResponse(t *testing.T) {
	ctx := context.Background()
	svc := newFakeService(0)
	gate := svc.gateID("1")
	ctrl := NewDetailController(svc, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ctrl.Load(ctx, "1")
	}()
	<-svc.started

	ctrl.Load(ctx, "2")
	close(gate)
	wg.Wait()

	view := ctrl.View()
	assert.Equal(t, "2", view.ID)
	require.NotNil(t, view.Record)
	assert.Equal(t, "record-2", view.Record.Name)
}
