package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestMemoryStore_CreateAndList(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	created, err := st.Create(ctx, 7, "buy milk", date(2024, 1, 10), date(2024, 1, 12))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, int64(7), created.UserID)

	list, err := st.ListByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created, list[0])

	// reads are idempotent
	again, err := st.ListByUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, list, again)
}

func TestMemoryStore_ListEmpty(t *testing.T) {
	st := NewMemory()
	list, err := st.ListByUser(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryStore_InsertionOrderAndDeleteNth(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	for _, desc := range []string{"a", "b", "c"} {
		_, err := st.Create(ctx, 1, desc, date(2024, 1, 1), date(2024, 1, 2))
		require.NoError(t, err)
	}

	list, err := st.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].Description)
	assert.Equal(t, "b", list[1].Description)
	assert.Equal(t, "c", list[2].Description)

	deleted, err := st.DeleteNth(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "b", deleted.Description)

	list, err = st.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Description)
	assert.Equal(t, "c", list[1].Description)

	// positions are re-derived after each delete
	deleted, err = st.DeleteNth(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "c", deleted.Description)
}

func TestMemoryStore_DeleteNthBounds(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	_, err := st.Create(ctx, 1, "only", date(2024, 1, 1), date(2024, 1, 2))
	require.NoError(t, err)

	_, err = st.DeleteNth(ctx, 1, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = st.DeleteNth(ctx, 1, -3)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = st.DeleteNth(ctx, 1, 2)
	assert.ErrorIs(t, err, ErrOutOfRange)

	list, err := st.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMemoryStore_AddDeleteRoundTrip(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	_, err := st.Create(ctx, 5, "one shot", date(2024, 3, 1), date(2024, 3, 2))
	require.NoError(t, err)

	_, err = st.DeleteNth(ctx, 5, 1)
	require.NoError(t, err)

	list, err := st.ListByUser(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryStore_ListOverdue(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()
	now := date(2024, 6, 15)

	_, err := st.Create(ctx, 1, "late", date(2024, 6, 1), date(2024, 6, 14))
	require.NoError(t, err)
	_, err = st.Create(ctx, 1, "ahead", date(2024, 6, 1), date(2024, 6, 16))
	require.NoError(t, err)

	overdue, err := st.ListOverdue(ctx, 1, now)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "late", overdue[0].Description)
}

func TestMemoryStore_ListInRange(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	_, err := st.Create(ctx, 1, "covers", date(2024, 1, 1), date(2024, 1, 31))
	require.NoError(t, err)
	_, err = st.Create(ctx, 1, "starts later", date(2024, 1, 16), date(2024, 1, 20))
	require.NoError(t, err)

	dayStart := date(2024, 1, 15)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)

	got, err := st.ListInRange(ctx, 1, dayStart, dayEnd)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "covers", got[0].Description)
}

func TestMemoryStore_CrossUserIsolation(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()
	now := date(2024, 6, 15)

	mine, err := st.Create(ctx, 1, "mine", date(2024, 6, 1), date(2024, 6, 2))
	require.NoError(t, err)
	_, err = st.Create(ctx, 2, "theirs", date(2024, 6, 1), date(2024, 6, 2))
	require.NoError(t, err)

	list, err := st.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine, list[0])

	overdue, err := st.ListOverdue(ctx, 2, now)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "theirs", overdue[0].Description)

	// user 2 has one task; position 2 must not reach user 1's records
	_, err = st.DeleteNth(ctx, 2, 2)
	assert.ErrorIs(t, err, ErrOutOfRange)

	list, err = st.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTask_String(t *testing.T) {
	task := Task{
		Description: "buy milk",
		StartDate:   date(2024, 1, 10),
		EndDate:     date(2024, 1, 12),
	}
	assert.Equal(t, "buy milk (Start: 2024-01-10, End: 2024-01-12)", task.String())
}
