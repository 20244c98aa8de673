package handlers

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/compute/apiv1/computepb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/rahilkadakia/gcevm/internal/platform/gce"
	"github.com/rahilkadakia/gcevm/internal/report"
)

func TestSweep_WritesReport(t *testing.T) {
	saveAndRestoreFactories(t)
	fakeKeys()
	isTerminal = func() bool { return false }
	useConfig(testConfig(t))

	mock := gce.NewMockClient()
	var deleted []string
	mock.CreateInstanceFunc = func(ctx context.Context, opts gce.InstanceCreateOpts) (*computepb.Instance, error) {
		if opts.Zone == "us-east1-b" {
			return nil, &googleapi.Error{Code: 403, Message: "quota exceeded"}
		}
		return gce.NewMockClient().CreateInstance(ctx, opts)
	}
	mock.DeleteInstanceFunc = func(_ context.Context, _, name string) error {
		deleted = append(deleted, name)
		return nil
	}
	newComputeClient = func(_ context.Context, _ string) (gce.ComputeManager, error) {
		return mock, nil
	}

	reportPath := filepath.Join(t.TempDir(), "report.json")
	err := Sweep(context.Background(), SweepOptions{
		ConfigPath: "gcevm.yaml",
		ReportPath: reportPath,
		NoTUI:      true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal(data, &rep))
	assert.Equal(t, "test-project", rep.Project)
	require.Len(t, rep.Zones, 2)
	assert.Equal(t, report.OutcomeCreated, rep.Zones[0].Outcome)
	assert.Equal(t, report.OutcomeQuotaDenied, rep.Zones[1].Outcome)
	assert.Equal(t, 1, rep.Summary.Created)

	// the created instance and the failed attempt were both cleaned up
	assert.Equal(t, []string{"vm-us-central1-a", "vm-us-east1-b"}, deleted)
}

func TestSweep_KeepSkipsCleanup(t *testing.T) {
	saveAndRestoreFactories(t)
	fakeKeys()
	isTerminal = func() bool { return false }
	useConfig(testConfig(t))

	mock := gce.NewMockClient()
	mock.DeleteInstanceFunc = func(_ context.Context, _, name string) error {
		t.Fatalf("deleted %s despite --keep", name)
		return nil
	}
	newComputeClient = func(_ context.Context, _ string) (gce.ComputeManager, error) {
		return mock, nil
	}

	err := Sweep(context.Background(), SweepOptions{
		ConfigPath: "gcevm.yaml",
		ReportPath: filepath.Join(t.TempDir(), "report.json"),
		Keep:       true,
		NoTUI:      true,
	})
	require.NoError(t, err)
}

func TestSweep_NoTUIFlagBeatsTerminal(t *testing.T) {
	saveAndRestoreFactories(t)
	fakeKeys()
	// pretend stdout is a terminal; NoTUI must still win
	isTerminal = func() bool {
		t.Fatal("terminal detection ran despite --no-tui")
		return true
	}
	useConfig(testConfig(t))

	newComputeClient = func(_ context.Context, _ string) (gce.ComputeManager, error) {
		return gce.NewMockClient(), nil
	}

	err := Sweep(context.Background(), SweepOptions{
		ConfigPath: "gcevm.yaml",
		ReportPath: filepath.Join(t.TempDir(), "report.json"),
		NoTUI:      true,
	})
	require.NoError(t, err)
}

func TestSweep_CancelledContext(t *testing.T) {
	saveAndRestoreFactories(t)
	fakeKeys()
	isTerminal = func() bool { return false }
	useConfig(testConfig(t))

	newComputeClient = func(_ context.Context, _ string) (gce.ComputeManager, error) {
		return gce.NewMockClient(), nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Sweep(ctx, SweepOptions{
		ConfigPath: "gcevm.yaml",
		ReportPath: filepath.Join(t.TempDir(), "report.json"),
		NoTUI:      true,
	})
	assert.Error(t, err)
}

func TestWriteReport_PathPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t)
	rep := report.New("test-project")
	rep.Finalize()

	// flag path wins over configured path
	flagPath := filepath.Join(dir, "flag.json")
	cfg.Report.Path = filepath.Join(dir, "configured.json")
	require.NoError(t, writeReport(cfg, flagPath, rep))
	_, err := os.Stat(flagPath)
	assert.NoError(t, err)
	_, err = os.Stat(cfg.Report.Path)
	assert.True(t, os.IsNotExist(err))

	// configured path used without a flag
	require.NoError(t, writeReport(cfg, "", rep))
	_, err = os.Stat(cfg.Report.Path)
	assert.NoError(t, err)
}
