package journal_test

import (
	"fmt"
	"path"
	"sync"
	"testing"

	"github.com/teenjuna/handoff"
	"github.com/teenjuna/handoff/internal/journal"
	"github.com/teenjuna/handoff/internal/testing/require"
)

func TestNew(t *testing.T) {
	run(t, func(t *testing.T, file string) {
		j, err := journal.New(journal.WithFile(file))
		require.Nil(t, err)
		require.NotNil(t, j)
		deferClose(t, j)
	})
}

func TestRecord(t *testing.T) {
	run(t, func(t *testing.T, file string) {
		j, _ := journal.New(journal.WithFile(file), journal.WithDurable(true))

		require.Nil(t, j.Record("C1", handoff.NewItem("P1", 0)))
		require.Nil(t, j.Record("C2", handoff.NewItem("P1", 1)))
		require.Nil(t, j.Record("C1", handoff.NewItem("P2", 0)))

		err := j.Record("C2", handoff.NewItem("P1", 0))
		require.ErrorIs(t, err, journal.ErrDuplicate)

		entries, err := j.Entries()
		require.Nil(t, err)
		require.Equal(t, len(entries), 3)
		require.Equal(t, entries[0].Producer, "P1")
		require.Equal(t, entries[0].Seq, 0)
		require.Equal(t, entries[0].Consumer, "C1")
		require.Equal(t, entries[2].Producer, "P2")
		require.Equal(t, entries[0].ConsumedAt.After(entries[2].ConsumedAt), false)

		stats, err := j.Stats()
		require.Nil(t, err)
		require.Equal(t, *stats, journal.Stats{Items: 3, Producers: 2, Consumers: 2})

		require.Nil(t, j.Close())

		err = j.Record("C1", handoff.NewItem("P3", 0))
		require.ErrorIs(t, err, journal.ErrClosed)
	})
}

func TestConcurrentRecord(t *testing.T) {
	const (
		consumers = 8
		items     = 50
	)
	run(t, func(t *testing.T, file string) {
		j, _ := journal.New(journal.WithFile(file))
		deferClose(t, j)

		var wg sync.WaitGroup
		for c := range consumers {
			wg.Go(func() {
				consumer := fmt.Sprintf("C%d", c)
				for seq := range items {
					if err := j.Record(consumer, handoff.NewItem(consumer, seq)); err != nil {
						t.Errorf("record: %v", err)
					}
				}
			})
		}
		wg.Wait()

		stats, err := j.Stats()
		require.Nil(t, err)
		require.Equal(t, stats.Items, consumers*items)
		require.Equal(t, stats.Consumers, consumers)
	})
}

func TestReopen(t *testing.T) {
	file := path.Join(t.TempDir(), "journal")

	j, err := journal.New(journal.WithFile(file))
	require.Nil(t, err)
	require.Nil(t, j.Record("C1", handoff.NewItem("P1", 0)))
	require.Nil(t, j.Close())

	j, err = journal.New(journal.WithFile(file))
	require.Nil(t, err)
	deferClose(t, j)

	require.ErrorIs(t, j.Record("C1", handoff.NewItem("P1", 0)), journal.ErrDuplicate)
	stats, err := j.Stats()
	require.Nil(t, err)
	require.Equal(t, stats.Items, 1)
}

func TestConfigValidation(t *testing.T) {
	cfg := &journal.Config{}

	require.PanicWithError(t, "file can't be blank", func() {
		cfg.File(" ")
	})

	require.PanicWithError(t, "file can't contain ?", func() {
		cfg.File("file?key=value")
	})
}

func run(t *testing.T, fn func(t *testing.T, file string)) {
	t.Helper()
	t.Run("In file", func(t *testing.T) {
		t.Helper()
		fn(t, path.Join(t.TempDir(), "file"))
	})
	t.Run("In memory", func(t *testing.T) {
		t.Helper()
		fn(t, ":memory:")
	})
}

func deferClose(t *testing.T, j *journal.Journal) {
	t.Cleanup(func() {
		if err := j.Close(); err != nil {
			t.Fatalf("close journal: %v", err)
		}
	})
}
