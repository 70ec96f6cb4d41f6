package server

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kalpruh/enrol/internal/api"
	"github.com/kalpruh/enrol/internal/infrastructure/sqlite"
	"github.com/kalpruh/enrol/internal/registration"
	"github.com/kalpruh/enrol/internal/submit"
	"github.com/kalpruh/enrol/internal/wizard"
)

func newTestServer(t *testing.T) (*Server, registration.Repository) {
	t.Helper()
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := db.RegistrationRepository()
	srv, err := NewServer(ServerConfig{
		Addr:    "127.0.0.1:0",
		Handler: NewHandler(HandlerConfig{Repository: repo}),
	})
	require.NoError(t, err)
	require.NotZero(t, srv.Port())
	return srv, repo
}

func TestServer_RunAndShutdown(t *testing.T) {
	srv, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, time.Second) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(srv.URL() + api.HealthPath)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

// A wizard driven to the summary step persists through the HTTP service.
func TestServer_WizardEndToEnd(t *testing.T) {
	srv, repo := newTestServer(t)
	go func() { _ = srv.Start() }()
	t.Cleanup(func() { _ = srv.Stop(context.Background()) })

	w := wizard.New(submit.NewHTTPCollaborator(srv.URL(), 2*time.Second), nil)
	for field, value := range map[registration.Field]any{
		registration.FieldFullName:    "Jo",
		registration.FieldEmail:       "jo@example.com",
		registration.FieldCountryCode: "91",
		registration.FieldPhoneNumber: "9040171",
		registration.FieldAffiliation: "IIT",
	} {
		require.NoError(t, w.Set(field, value))
	}
	require.True(t, w.Next())
	require.NoError(t, w.Set(registration.FieldSolutionCategory, registration.SolutionCustomizable))
	require.True(t, w.Next())
	require.Equal(t, wizard.StepAlgorithms, w.Step())
	require.NoError(t, w.Set(registration.FieldSelectedAlgorithms, []string{"object-detection"}))
	require.True(t, w.Next())
	require.Equal(t, wizard.StepSummary, w.Step())

	status, err := w.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, wizard.StateSucceeded, status.State)
	require.Equal(t, api.SavedMessage, status.Message)

	doc, err := repo.FindByID(context.Background(), status.ID)
	require.NoError(t, err)
	require.Equal(t, registration.SolutionCustomizable, doc.SolutionCategory)
	require.Equal(t, registration.UserCategoryEnthusiast, doc.UserCategory)
}
