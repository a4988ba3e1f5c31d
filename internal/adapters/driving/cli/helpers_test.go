package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ration/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ration/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/core/services"
)

// mockForagingService implements driving.ForagingService for testing.
type mockForagingService struct {
	mu       sync.Mutex
	tips     string
	err      error
	profiles []domain.Profile
}

func (m *mockForagingService) GenerateTips(_ context.Context, p domain.Profile) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = append(m.profiles, p)
	return m.tips, m.err
}

func noEnv(string) (string, bool) { return "", false }

// setupTestServices builds real services over an in-memory dataset and a
// config file in a temp dir.
func setupTestServices(t *testing.T, foods ...domain.FoodRecord) (*Services, *file.ConfigStore) {
	t.Helper()
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	settings := services.NewSettingsService(store)
	settings.SetEnvLookup(noEnv)

	return &Services{
		Calories: services.NewCalorieService(),
		Search:   services.NewSearchService(memory.NewDataset(foods...), 0),
		Foraging: &mockForagingService{tips: "Cattail [Typha latifolia]"},
		Settings: settings,
	}, store
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCommand executes the root command with svc injected and returns the
// combined output.
func runCommand(t *testing.T, svc *Services, args ...string) (string, error) {
	t.Helper()
	return runCommandContext(t, context.Background(), svc, args...)
}

func runCommandContext(t *testing.T, ctx context.Context, svc *Services, args ...string) (string, error) {
	t.Helper()

	setServices(svc)
	resetFlags(rootCmd)
	t.Cleanup(func() {
		setServices(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}
