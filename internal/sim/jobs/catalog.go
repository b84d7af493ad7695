// Package jobs resolves work shifts: the static job table, wage and output
// scaling by skill, fund transfer and goods deposit, and the XP grant back
// into the skill ledger.
package jobs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
)

// Def is one entry in the static job table.
type Def struct {
	ID             string  `json:"id"`
	BaseWage       int     `json:"base_wage"`
	OutputItem     string  `json:"output_item"`
	OutputQuantity float64 `json:"output_quantity"`
	Skill          string  `json:"skill"`
}

type Catalog struct {
	ByID   map[string]Def
	Digest string
}

type catalogFile struct {
	Jobs []Def `json:"jobs"`
}

// LoadCatalog reads the job table from a JSON config and digests the raw
// bytes, so two processes can compare tables cheaply.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f catalogFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("jobs catalog: %w", err)
	}
	c := NewCatalog(f.Jobs...)
	sum := sha256.Sum256(raw)
	c.Digest = hex.EncodeToString(sum[:])
	return c, nil
}

func NewCatalog(defs ...Def) *Catalog {
	c := &Catalog{ByID: make(map[string]Def, len(defs))}
	for _, d := range defs {
		c.ByID[d.ID] = d
	}
	return c
}
