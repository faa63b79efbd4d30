package display

import (
	"bytes"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwu-libraries/wasync/archiveit"
	"github.com/gwu-libraries/wasync/history"
	"github.com/gwu-libraries/wasync/reconcile"
)

func init() {
	pterm.DisableStyling()
}

func TestMarshalJSON(t *testing.T) {
	data, err := MarshalJSON(map[string]string{"note": "<p>replay</p>"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"note\": \"<p>replay</p>\"\n}", string(data))
}

func TestShouldOutputJSON(t *testing.T) {
	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{Use: "run"}
		cmd.Flags().Bool("json", false, "")
		return cmd
	}

	t.Run("flag", func(t *testing.T) {
		cmd := newCmd()
		require.NoError(t, cmd.Flags().Set("json", "true"))
		assert.True(t, ShouldOutputJSON(cmd))
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv(OutputEnv, "json")
		assert.True(t, ShouldOutputJSON(newCmd()))
		assert.True(t, ShouldOutputJSON(nil))
	})

	t.Run("explicit false beats env", func(t *testing.T) {
		t.Setenv(OutputEnv, "json")
		cmd := newCmd()
		require.NoError(t, cmd.Flags().Set("json", "false"))
		assert.False(t, ShouldOutputJSON(cmd))
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv(OutputEnv, "")
		assert.False(t, ShouldOutputJSON(newCmd()))
	})
}

func TestRenderReport(t *testing.T) {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	report := &reconcile.RunReport{
		ID:         "run-1",
		Mode:       reconcile.ModeAll,
		DryRun:     true,
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		Records:    2,
		Updated:    1,
		Skipped:    1,
		Outcomes: []reconcile.Outcome{
			{
				RecordURI:           "/repositories/2/archival_objects/11",
				URL:                 "https://library.gwu.edu/",
				Status:              reconcile.StatusUpdated,
				Begin:               "2019-01-01",
				End:                 "2020-06-01",
				Captures:            2,
				AncestorsChanged:    2,
				DigitalObjectLinked: true,
			},
			{RecordURI: "/repositories/2/archival_objects/12", Status: reconcile.StatusNoURLs},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "Run run-1 (all) [dry run]")
	assert.Contains(t, out, "2019-01-01 - 2020-06-01")
	assert.Contains(t, out, "(would create)")
	assert.Contains(t, out, "no_urls")
	assert.Contains(t, out, "nothing was written")
}

func TestRenderRuns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderRuns(&buf, nil))
	assert.Contains(t, buf.String(), "No runs recorded")

	buf.Reset()
	require.NoError(t, RenderRuns(&buf, []history.Run{{ID: "abc", Mode: "single", Records: 1, Failed: 1}}))
	assert.Contains(t, buf.String(), "abc")
	assert.Contains(t, buf.String(), "single")
}

func TestRenderSeed(t *testing.T) {
	var buf bytes.Buffer
	err := RenderSeed(&buf, SeedSummary{
		URL:        "https://library.gwu.edu/hours",
		Resolution: &archiveit.Resolution{Collection: 123, Match: archiveit.MatchInferred, Domain: "gwu.edu", Siblings: 3},
		ReplayURL:  "https://wayback.archive-it.org/123/*/https://library.gwu.edu/hours",
		Summary:    archiveit.Summary{Begin: "2019-01-01", End: "2020-06-01", Count: 2},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "123")
	assert.Contains(t, out, "3 seed(s) on gwu.edu")
	assert.Contains(t, out, "2020-06-01")
}
