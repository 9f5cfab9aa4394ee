package selection

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore_CreateGet(t *testing.T) {
	s := NewStore(10)

	id := s.Create(Initial())
	require.NotEmpty(t, id)

	st, err := s.Get(id)
	require.NoError(t, err)
	require.Equal(t, Initial(), st)

	_, err = s.Get("missing")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_DispatchKeepsStateOnError(t *testing.T) {
	s := NewStore(10)
	id := s.Create(Initial())

	st, err := s.Dispatch(id, Action{Type: ActionToggleCategory, Value: "WINE"})
	require.NoError(t, err)
	require.Equal(t, []string{"WINE"}, st.Categories)

	st, err = s.Dispatch(id, Action{Type: ActionSetChartType, Value: "pie"})
	require.ErrorIs(t, err, ErrInvalidAction)
	require.Equal(t, []string{"WINE"}, st.Categories)

	stored, err := s.Get(id)
	require.NoError(t, err)
	require.Equal(t, ChartLine, stored.ChartType)

	_, err = s.Dispatch("missing", Action{Type: ActionSetSearch})
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_EvictsLeastRecentlyUsed(t *testing.T) {
	s := NewStore(2)
	seq := 0
	s.newID = func() string {
		seq++
		return fmt.Sprintf("session-%d", seq)
	}

	first := s.Create(Initial())
	second := s.Create(Initial())
	_, err := s.Get(first)
	require.NoError(t, err)

	s.Create(Initial())
	require.Equal(t, 2, s.Len())

	_, err = s.Get(second)
	require.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.Get(first)
	require.NoError(t, err)
}

func TestStore_ConcurrentToggles(t *testing.T) {
	s := NewStore(10)
	id := s.Create(Initial())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Dispatch(id, Action{Type: ActionToggleWarehouse, Value: fmt.Sprintf("W%d", i)})
		}(i)
	}
	wg.Wait()

	st, err := s.Get(id)
	require.NoError(t, err)
	require.Len(t, st.Warehouses, 50)
}
