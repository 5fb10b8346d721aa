package dataset

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/Silversmith/core/errors"
	"github.com/FocuswithJustin/Silversmith/core/ir"
	"github.com/FocuswithJustin/Silversmith/core/stats"
)

// ManifestVersion is the current manifest format version.
const ManifestVersion = "1.0.0"

// Manifest records one dataset build: what was produced, from which
// rules, and how well alignment went. It sits next to the JSONL file
// and is the unit downstream consumers check before training.
type Manifest struct {
	ManifestVersion string `json:"manifest_version"`

	// BatchID uniquely identifies this build.
	BatchID string `json:"batch_id"`

	// CreatedAt is the build timestamp, RFC 3339 UTC.
	CreatedAt string `json:"created_at"`

	// DatasetPath is the JSONL file this manifest describes.
	DatasetPath string `json:"dataset_path"`

	// Examples is the number of examples in the dataset.
	Examples int `json:"examples"`

	// ContentBLAKE3 is the BLAKE3 hex digest of the uncompressed
	// JSONL stream.
	ContentBLAKE3 string `json:"content_blake3"`

	// RulesHash is the SHA-256 hex digest of the rules file the batch
	// was built with.
	RulesHash string `json:"rules_hash,omitempty"`

	// Schema declares the label vocabulary and schema version.
	Schema ir.SchemaInfo `json:"schema"`

	// Stats is the batch-level quality summary.
	Stats stats.Summary `json:"stats"`
}

// NewManifest builds a manifest for a finished write.
func NewManifest(w *Writer, schema ir.SchemaInfo, summary stats.Summary) *Manifest {
	return &Manifest{
		ManifestVersion: ManifestVersion,
		BatchID:         uuid.New().String(),
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
		DatasetPath:     w.path,
		Examples:        w.Count(),
		ContentBLAKE3:   w.ContentHash(),
		Schema:          schema,
		Stats:           summary,
	}
}

// ToJSON serializes the manifest with indentation.
func (m *Manifest) ToJSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// Save writes the manifest to path.
func (m *Manifest) Save(path string) error {
	data, err := m.ToJSON()
	if err != nil {
		return errors.Wrap(err, "failed to marshal manifest")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.NewIO("write manifest", path, err)
	}
	return nil
}

// LoadManifest reads a manifest back from disk.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("manifest", path)
		}
		return nil, errors.NewIO("read manifest", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.NewParse("json", path, err.Error())
	}
	return &m, nil
}
