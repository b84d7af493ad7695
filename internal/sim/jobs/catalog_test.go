package jobs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCatalog(t *testing.T) {
	body := `{"jobs": [
		{"id": "farmer", "base_wage": 10, "output_item": "wheat", "output_quantity": 2, "skill": "farming"},
		{"id": "mason", "base_wage": 14, "output_item": "stone_block", "output_quantity": 1, "skill": "masonry"}
	]}`
	path := filepath.Join(t.TempDir(), "jobs.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.ByID) != 2 {
		t.Fatalf("jobs = %d, want 2", len(c.ByID))
	}
	farmer, ok := c.ByID["farmer"]
	if !ok || farmer.BaseWage != 10 || farmer.OutputItem != "wheat" || farmer.Skill != "farming" {
		t.Fatalf("farmer def: %+v ok=%v", farmer, ok)
	}
	if len(c.Digest) != 64 {
		t.Fatalf("digest = %q", c.Digest)
	}

	// Same bytes hash to the same digest.
	again, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.Digest != c.Digest {
		t.Fatalf("digest changed across loads")
	}
}

func TestLoadCatalogRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadCatalog(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
