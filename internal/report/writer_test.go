package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"BandSentinel/internal/model"
)

func TestWrite_NullAndReasonFields(t *testing.T) {
	rep := &model.Report{
		Symbol: "TEST",
		Latest: model.SnapshotReport{
			Date:    "2024-06-03",
			Price:   101.5,
			Z:       model.NotComputable(model.ReasonDegenerateStdev),
			ZReason: model.ReasonDegenerateStdev,
		},
	}

	path := filepath.Join(t.TempDir(), "report.json")
	if err := Write(rep, path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("reparse: %v", err)
	}
	latest := decoded["latest_snapshot"].(map[string]any)
	if z, present := latest["z"]; !present || z != nil {
		t.Errorf("z = %v, want explicit null", z)
	}
	if latest["z_reason"] != model.ReasonDegenerateStdev {
		t.Errorf("z_reason = %v", latest["z_reason"])
	}
}

func TestMarshal_NoVolatileFields(t *testing.T) {
	data, err := Marshal(&model.Report{Symbol: "TEST"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, field := range []string{"run_id", "timestamp", "generated_at"} {
		if strings.Contains(string(data), field) {
			t.Errorf("report carries volatile field %q", field)
		}
	}
}
