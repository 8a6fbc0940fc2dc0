package repo_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geotrails/travelmap/internal/domain"
	"github.com/geotrails/travelmap/internal/repo"
	"github.com/geotrails/travelmap/testutil"
)

func newTravelPointRepo(t *testing.T) repo.TravelPointRepo {
	t.Helper()
	return repo.NewTravelPointRepo(testutil.NewTx(t))
}

func strPtr(s string) *string { return &s }

// pointFixture returns Tiananmen; callers override fields as needed.
func pointFixture() domain.TravelPoint {
	return domain.TravelPoint{
		Province: "Beijing",
		Name:     "Tiananmen",
		Info:     "landmark",
		Owner:    strPtr("alice"),
		Location: orb.Point{116.4, 39.9},
	}
}

func gids(points []domain.TravelPoint) []int64 {
	out := make([]int64, 0, len(points))
	for _, p := range points {
		out = append(out, p.GID)
	}
	return out
}

func TestTravelPointRepo_Create(t *testing.T) {
	r := newTravelPointRepo(t)
	ctx := context.Background()

	input := pointFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.Positive(t, got.GID, "gid should be DB-generated")
	assert.Equal(t, "Beijing", got.Province)
	assert.Equal(t, "Tiananmen", got.Name)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "alice", *got.Owner)
	assert.InDelta(t, 116.4, got.Lon(), 1e-9)
	assert.InDelta(t, 39.9, got.Lat(), 1e-9)
	assert.False(t, got.CreatedAt.IsZero(), "created_at should be set by DB")
}

func TestTravelPointRepo_Create_NilOwner(t *testing.T) {
	r := newTravelPointRepo(t)

	input := pointFixture()
	input.Owner = nil

	got, err := r.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Nil(t, got.Owner)
}

// TestTravelPointRepo_LocationRoundTrip checks that a created point reads
// back through List with the same coordinates.
func TestTravelPointRepo_LocationRoundTrip(t *testing.T) {
	r := newTravelPointRepo(t)
	ctx := context.Background()

	locations := []orb.Point{{116.4, 39.9}, {-73.985428, 40.748817}, {151.2153, -33.8568}, {0, 0}}
	created := map[int64]orb.Point{}
	for _, loc := range locations {
		p := pointFixture()
		p.Location = loc
		got, err := r.Create(ctx, p)
		require.NoError(t, err)
		created[got.GID] = loc
	}

	all, err := r.List(ctx)
	require.NoError(t, err)

	seen := 0
	for _, p := range all {
		want, ok := created[p.GID]
		if !ok {
			continue
		}
		seen++
		assert.InDelta(t, want.Lon(), p.Lon(), 1e-9)
		assert.InDelta(t, want.Lat(), p.Lat(), 1e-9)
	}
	assert.Equal(t, len(locations), seen)
}

func TestTravelPointRepo_List_NewestFirst(t *testing.T) {
	r := newTravelPointRepo(t)
	ctx := context.Background()

	first, err := r.Create(ctx, pointFixture())
	require.NoError(t, err)
	second, err := r.Create(ctx, pointFixture())
	require.NoError(t, err)

	all, err := r.List(ctx)
	require.NoError(t, err)

	ids := gids(all)
	require.Contains(t, ids, first.GID)
	require.Contains(t, ids, second.GID)

	// Both rows share a transaction timestamp, so gid breaks the tie.
	var firstIdx, secondIdx int
	for i, id := range ids {
		switch id {
		case first.GID:
			firstIdx = i
		case second.GID:
			secondIdx = i
		}
	}
	assert.Less(t, secondIdx, firstIdx, "newer point should be listed first")
}

func TestTravelPointRepo_ListByOwner(t *testing.T) {
	r := newTravelPointRepo(t)
	ctx := context.Background()

	mine, err := r.Create(ctx, pointFixture())
	require.NoError(t, err)

	other := pointFixture()
	other.Owner = strPtr("bob-" + t.Name())
	theirs, err := r.Create(ctx, other)
	require.NoError(t, err)

	got, err := r.ListByOwner(ctx, "alice")
	require.NoError(t, err)

	ids := gids(got)
	assert.Contains(t, ids, mine.GID)
	assert.NotContains(t, ids, theirs.GID)
}

func TestTravelPointRepo_SearchByName_CaseInsensitive(t *testing.T) {
	r := newTravelPointRepo(t)
	ctx := context.Background()

	names := []string{"Beijing Zoo", "old beijing street", "BEIHAI Park", "Shanghai Tower"}
	byName := map[string]int64{}
	for _, n := range names {
		p := pointFixture()
		p.Name = n
		got, err := r.Create(ctx, p)
		require.NoError(t, err)
		byName[n] = got.GID
	}

	got, err := r.SearchByName(ctx, "Bei")
	require.NoError(t, err)

	ids := gids(got)
	assert.Contains(t, ids, byName["Beijing Zoo"])
	assert.Contains(t, ids, byName["old beijing street"])
	assert.Contains(t, ids, byName["BEIHAI Park"])
	assert.NotContains(t, ids, byName["Shanghai Tower"])
	for _, p := range got {
		assert.Contains(t, strings.ToLower(p.Name), "bei")
	}
}

func TestTravelPointRepo_SearchByName_WildcardsMatchLiterally(t *testing.T) {
	r := newTravelPointRepo(t)
	ctx := context.Background()

	byName := map[string]int64{}
	for _, n := range []string{"50% off market", "500 steps", "north_gate", "northXgateY"} {
		p := pointFixture()
		p.Name = n
		got, err := r.Create(ctx, p)
		require.NoError(t, err)
		byName[n] = got.GID
	}

	got, err := r.SearchByName(ctx, "50%")
	require.NoError(t, err)
	assert.Equal(t, []int64{byName["50% off market"]}, gids(got))

	got, err = r.SearchByName(ctx, "h_g")
	require.NoError(t, err)
	assert.Equal(t, []int64{byName["north_gate"]}, gids(got))
}

func TestTravelPointRepo_ListWithin(t *testing.T) {
	r := newTravelPointRepo(t)
	ctx := context.Background()

	inside, err := r.Create(ctx, pointFixture())
	require.NoError(t, err)

	far := pointFixture()
	far.Location = orb.Point{121.47, 31.23}
	outside, err := r.Create(ctx, far)
	require.NoError(t, err)

	env, err := domain.NewEnvelope(116.0, 39.5, 117.0, 40.5)
	require.NoError(t, err)

	got, err := r.ListWithin(ctx, env)
	require.NoError(t, err)

	ids := gids(got)
	assert.Contains(t, ids, inside.GID)
	assert.NotContains(t, ids, outside.GID)
}

// TestTravelPointRepo_ListWithin_Empty checks an envelope over open ocean
// returns an empty, non-nil slice.
func TestTravelPointRepo_ListWithin_Empty(t *testing.T) {
	r := newTravelPointRepo(t)

	env, err := domain.NewEnvelope(-150.0, -50.0, -149.9, -49.9)
	require.NoError(t, err)

	got, err := r.ListWithin(context.Background(), env)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTravelPointRepo_Update(t *testing.T) {
	r := newTravelPointRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, pointFixture())
	require.NoError(t, err)

	created.Name = "Forbidden City"
	created.Info = "palace"
	created.Location = orb.Point{116.397, 39.916}
	created.Owner = nil // keep existing owner

	updated, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, created.GID, updated.GID)
	assert.Equal(t, "Forbidden City", updated.Name)
	assert.Equal(t, "palace", updated.Info)
	assert.InDelta(t, 116.397, updated.Lon(), 1e-9)
	assert.InDelta(t, 39.916, updated.Lat(), 1e-9)
	require.NotNil(t, updated.Owner)
	assert.Equal(t, "alice", *updated.Owner)
}

func TestTravelPointRepo_Update_NotFound(t *testing.T) {
	r := newTravelPointRepo(t)

	ghost := pointFixture()
	ghost.GID = 987654321

	_, err := r.Update(context.Background(), ghost)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTravelPointRepo_Delete_Idempotent(t *testing.T) {
	r := newTravelPointRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, pointFixture())
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.GID))
	require.NoError(t, r.Delete(ctx, created.GID), "second delete should also succeed")

	all, err := r.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, gids(all), created.GID)
}

// TestTravelPointRepo_ConcurrentCreate inserts through a real pool (not a
// transaction) from several goroutines and checks no write is lost.
func TestTravelPointRepo_ConcurrentCreate(t *testing.T) {
	pool := testutil.NewPool(t)
	r := repo.NewTravelPointRepo(pool)
	ctx := context.Background()

	const n = 8
	owner := fmt.Sprintf("concurrent-%s", t.Name())

	var wg sync.WaitGroup
	created := make([]int64, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := pointFixture()
			p.Owner = &owner
			p.Name = fmt.Sprintf("point-%d", i)
			got, err := r.Create(ctx, p)
			created[i], errs[i] = got.GID, err
		}(i)
	}
	wg.Wait()

	t.Cleanup(func() {
		for _, gid := range created {
			_ = r.Delete(context.Background(), gid)
		}
	})

	for _, err := range errs {
		require.NoError(t, err)
	}

	got, err := r.ListByOwner(ctx, owner)
	require.NoError(t, err)
	assert.ElementsMatch(t, created, gids(got))
}
