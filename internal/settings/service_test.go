package settings_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awardpilot/awardpilot/internal/settings"
)

func newService() (*settings.Service, *settings.InMemoryRepository) {
	repo := settings.NewInMemoryRepository()
	return settings.NewService(repo, zerolog.Nop()), repo
}

func intPtr(v int) *int { return &v }

func TestService_Load_DefaultsWhenEmpty(t *testing.T) {
	service, _ := newService()

	doc := service.Load(context.Background())

	require.NotNil(t, doc)
	assert.Len(t, doc.Routes, 2)
	assert.Len(t, doc.Programs, 4)
	assert.Equal(t, "opo-ord", doc.Routes[0].ID)
	assert.Equal(t, "flyingblue", doc.Programs[0].ID)
}

func TestService_SaveAndLoad_RoundTrip(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	doc := settings.DefaultSettings()
	doc.Programs[0].Balance = intPtr(68000)
	require.NoError(t, service.Save(ctx, doc))

	loaded := service.Load(ctx)

	// Order preserved, optional balance preserved as present vs absent.
	require.Len(t, loaded.Programs, 4)
	require.NotNil(t, loaded.Programs[0].Balance)
	assert.Equal(t, 68000, *loaded.Programs[0].Balance)
	assert.Nil(t, loaded.Programs[1].Balance, "absent balance must stay absent, not become 0")

	for i, r := range doc.Routes {
		assert.Equal(t, r.ID, loaded.Routes[i].ID)
	}
}

func TestService_Load_EmptyCollectionsMeanUnset(t *testing.T) {
	service, repo := newService()
	ctx := context.Background()

	require.NoError(t, repo.SaveSettings(ctx, &settings.AppSettings{
		Version:  settings.SchemaVersion,
		Routes:   []settings.Route{},
		Programs: []settings.RewardProgram{},
	}))

	doc := service.Load(ctx)
	assert.Len(t, doc.Routes, 2, "empty routes replaced wholesale by defaults")
	assert.Len(t, doc.Programs, 4, "empty programs replaced wholesale by defaults")
}

func TestService_Load_VersionMismatchFallsBack(t *testing.T) {
	service, repo := newService()
	ctx := context.Background()

	stored := settings.DefaultSettings()
	stored.Version = 99
	stored.Routes[0].Label = "should not survive"
	require.NoError(t, repo.SaveSettings(ctx, stored))

	doc := service.Load(ctx)
	assert.NotEqual(t, "should not survive", doc.Routes[0].Label)
}

func TestService_Save_Validation(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*settings.AppSettings)
		field  string
	}{
		{"bad origin", func(d *settings.AppSettings) { d.Routes[0].Origin = "PORT" }, "routes[0].origin"},
		{"bad destination", func(d *settings.AppSettings) { d.Routes[0].Destination = "x" }, "routes[0].destination"},
		{"bad date", func(d *settings.AppSettings) { d.Routes[0].Date = "27-05-2026" }, "routes[0].date"},
		{"zero threshold", func(d *settings.AppSettings) { d.Programs[0].Threshold = 0 }, "programs[0].threshold"},
		{"negative miles", func(d *settings.AppSettings) { d.Programs[0].Miles = -1 }, "programs[0].miles"},
		{"missing name", func(d *settings.AppSettings) { d.Programs[0].Name = "" }, "programs[0].name"},
		{"negative balance", func(d *settings.AppSettings) { d.Programs[0].Balance = intPtr(-5) }, "programs[0].balance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := settings.DefaultSettings()
			tt.mutate(doc)

			err := service.Save(ctx, doc)
			var ve *settings.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tt.field)
		})
	}
}

func TestService_Save_AssignsIDsAndUppercasesIATA(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	doc := settings.DefaultSettings()
	doc.Routes = append(doc.Routes, settings.Route{
		Label: "Lisbon → Newark", Origin: "lis", OriginCity: "Lisbon",
		Destination: "ewr", DestCity: "Newark", Date: "2026-09-12",
	})
	require.NoError(t, service.Save(ctx, doc))

	loaded := service.Load(ctx)
	added := loaded.Routes[len(loaded.Routes)-1]
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "LIS", added.Origin)
	assert.Equal(t, "EWR", added.Destination)
}

func TestService_AddPresetProgram_SkipsDuplicateNames(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	require.NoError(t, service.AddPresetProgram(ctx, settings.DefaultPrograms()[0]))
	doc := service.Load(ctx)
	assert.Len(t, doc.Programs, 4, "re-adding a preset by name is a no-op")

	require.NoError(t, service.AddPresetProgram(ctx, settings.RewardProgram{
		ID: "united", Name: "United MileagePlus", Miles: 30000, Threshold: 1.5,
	}))
	doc = service.Load(ctx)
	assert.Len(t, doc.Programs, 5)
}

func TestService_RouteByID(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	route, err := service.RouteByID(ctx, "opo-ord")
	require.NoError(t, err)
	assert.Equal(t, "OPO", route.Origin)

	_, err = service.RouteByID(ctx, "nope")
	assert.ErrorIs(t, err, settings.ErrRouteNotFound)
}

func TestService_Overrides(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	_, err := service.Override(ctx, "opo-ord", "flyingblue")
	assert.ErrorIs(t, err, settings.ErrOverrideNotFound)

	require.NoError(t, service.SetOverride(ctx, &settings.Override{
		RouteID: "opo-ord", ProgramID: "flyingblue", Miles: 21000, Fees: 112.50,
	}))

	o, err := service.Override(ctx, "opo-ord", "flyingblue")
	require.NoError(t, err)
	assert.Equal(t, 21000, o.Miles)
	assert.Equal(t, 112.50, o.Fees)
	assert.False(t, o.UpdatedAt.IsZero())

	// Clearing makes a subsequent read return absent, not zero.
	require.NoError(t, service.ClearOverride(ctx, "opo-ord", "flyingblue"))
	_, err = service.Override(ctx, "opo-ord", "flyingblue")
	assert.ErrorIs(t, err, settings.ErrOverrideNotFound)

	// Clearing an absent override is not an error.
	assert.NoError(t, service.ClearOverride(ctx, "opo-ord", "flyingblue"))
}

func TestService_SetOverride_Validation(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	err := service.SetOverride(ctx, &settings.Override{RouteID: "r", ProgramID: "p", Miles: 0})
	var ve *settings.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "miles")

	err = service.SetOverride(ctx, &settings.Override{RouteID: "r", ProgramID: "p", Miles: 1000, Fees: -1})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "fees")
}
