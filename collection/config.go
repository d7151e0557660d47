package collection

import (
	"fmt"
	"os"

	"github.com/hupe1980/pointstore/internal/compress"
	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the config layout written by MarshalConfig.
// Files with a lower, non-zero version carry a SegmentConfigV5.
const CurrentConfigVersion = 6

// MaxShards is the largest supported shard number.
const MaxShards = 256

// Distance is the vector similarity function.
type Distance string

const (
	DistanceCosine    Distance = "Cosine"
	DistanceEuclid    Distance = "Euclid"
	DistanceDot       Distance = "Dot"
	DistanceManhattan Distance = "Manhattan"
)

func (d Distance) valid() bool {
	switch d {
	case DistanceCosine, DistanceEuclid, DistanceDot, DistanceManhattan:
		return true
	}
	return false
}

// HnswConfig holds HNSW graph parameters.
type HnswConfig struct {
	M                 int   `yaml:"m" json:"m"`
	EfConstruct       int   `yaml:"ef_construct" json:"ef_construct"`
	FullScanThreshold int   `yaml:"full_scan_threshold" json:"full_scan_threshold"`
	OnDisk            *bool `yaml:"on_disk,omitempty" json:"on_disk,omitempty"`
}

// IndexType names a vector index.
type IndexType string

const (
	IndexPlain IndexType = "plain"
	IndexHNSW  IndexType = "hnsw"
)

// IndexConfig selects the vector index and its parameters.
type IndexConfig struct {
	Type IndexType   `yaml:"type" json:"type"`
	Hnsw *HnswConfig `yaml:"options,omitempty" json:"options,omitempty"`
}

// HNSWIndex returns an HNSW IndexConfig.
func HNSWIndex(cfg HnswConfig) IndexConfig {
	return IndexConfig{Type: IndexHNSW, Hnsw: &cfg}
}

// ScalarQuantization configures int8 scalar quantization.
type ScalarQuantization struct {
	Type      string   `yaml:"type" json:"type"`
	Quantile  *float32 `yaml:"quantile,omitempty" json:"quantile,omitempty"`
	AlwaysRAM *bool    `yaml:"always_ram,omitempty" json:"always_ram,omitempty"`
}

// QuantizationConfig configures vector quantization.
type QuantizationConfig struct {
	Scalar *ScalarQuantization `yaml:"scalar,omitempty" json:"scalar,omitempty"`
}

// PayloadStorageType selects where payloads live.
type PayloadStorageType string

const (
	PayloadInMemory PayloadStorageType = "in_memory"
	PayloadOnDisk   PayloadStorageType = "on_disk"
)

// VectorDataConfig describes one named vector.
type VectorDataConfig struct {
	Size               int                 `yaml:"size" json:"size"`
	Distance           Distance            `yaml:"distance" json:"distance"`
	Index              IndexConfig         `yaml:"index" json:"index"`
	QuantizationConfig *QuantizationConfig `yaml:"quantization_config,omitempty" json:"quantization_config,omitempty"`
	OnDisk             bool                `yaml:"on_disk" json:"on_disk"`
}

// SegmentConfig describes the storage layout of a collection.
type SegmentConfig struct {
	VectorData         map[string]VectorDataConfig `yaml:"vector_data" json:"vector_data"`
	Appendable         bool                        `yaml:"appendable" json:"appendable"`
	PayloadStorageType PayloadStorageType          `yaml:"payload_storage_type" json:"payload_storage_type"`
}

// SegmentState pairs a segment config with the last applied operation.
type SegmentState struct {
	Version *uint64       `yaml:"version,omitempty" json:"version,omitempty"`
	Config  SegmentConfig `yaml:"config" json:"config"`
}

// Config configures a collection.
type Config struct {
	ShardNumber        int           `yaml:"shard_number" json:"shard_number"`
	ReplicationFactor  int           `yaml:"replication_factor" json:"replication_factor"`
	PayloadCompression string        `yaml:"payload_compression,omitempty" json:"payload_compression,omitempty"`
	Segment            SegmentConfig `yaml:"segment" json:"segment"`
}

// DefaultConfig returns a single-shard config with one unnamed vector.
func DefaultConfig(size int, distance Distance) Config {
	return Config{
		ShardNumber:       1,
		ReplicationFactor: 1,
		Segment: SegmentConfig{
			VectorData: map[string]VectorDataConfig{
				"": {
					Size:     size,
					Distance: distance,
					Index:    HNSWIndex(HnswConfig{M: 16, EfConstruct: 100, FullScanThreshold: 10000}),
				},
			},
			Appendable:         true,
			PayloadStorageType: PayloadInMemory,
		},
	}
}

func (c *Config) applyDefaults() {
	if c.ShardNumber == 0 {
		c.ShardNumber = 1
	}
	if c.ReplicationFactor == 0 {
		c.ReplicationFactor = 1
	}
	if c.Segment.PayloadStorageType == "" {
		c.Segment.PayloadStorageType = PayloadInMemory
	}
}

// Validate checks the config for consistency.
func (c Config) Validate() error {
	if c.ShardNumber < 1 || c.ShardNumber > MaxShards {
		return fmt.Errorf("%w: shard_number %d out of range [1, %d]", ErrInvalidConfig, c.ShardNumber, MaxShards)
	}
	if c.ReplicationFactor < 1 {
		return fmt.Errorf("%w: replication_factor must be positive", ErrInvalidConfig)
	}
	if _, err := compress.ParseType(c.PayloadCompression); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if len(c.Segment.VectorData) == 0 {
		return fmt.Errorf("%w: at least one vector must be configured", ErrInvalidConfig)
	}
	for name, v := range c.Segment.VectorData {
		if v.Size <= 0 {
			return fmt.Errorf("%w: vector %q has invalid size %d", ErrInvalidConfig, name, v.Size)
		}
		if !v.Distance.valid() {
			return fmt.Errorf("%w: vector %q has unknown distance %q", ErrInvalidConfig, name, v.Distance)
		}
	}
	switch c.Segment.PayloadStorageType {
	case PayloadInMemory, PayloadOnDisk:
	default:
		return fmt.Errorf("%w: unknown payload_storage_type %q", ErrInvalidConfig, c.Segment.PayloadStorageType)
	}
	return nil
}

type configFile struct {
	Version            int       `yaml:"version"`
	ShardNumber        int       `yaml:"shard_number"`
	ReplicationFactor  int       `yaml:"replication_factor"`
	PayloadCompression string    `yaml:"payload_compression,omitempty"`
	Segment            yaml.Node `yaml:"segment"`
}

// ParseConfig decodes a YAML or JSON collection config, migrating legacy
// segment layouts, applying defaults and validating the result.
func ParseConfig(data []byte) (Config, error) {
	var f configFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := Config{
		ShardNumber:        f.ShardNumber,
		ReplicationFactor:  f.ReplicationFactor,
		PayloadCompression: f.PayloadCompression,
	}

	if f.Version > 0 && f.Version < CurrentConfigVersion {
		var old SegmentConfigV5
		if err := f.Segment.Decode(&old); err != nil {
			return Config{}, fmt.Errorf("%w: legacy segment: %w", ErrInvalidConfig, err)
		}
		cfg.Segment = old.Migrate()
	} else if f.Segment.Kind != 0 {
		if err := f.Segment.Decode(&cfg.Segment); err != nil {
			return Config{}, fmt.Errorf("%w: segment: %w", ErrInvalidConfig, err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the config file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}

// MarshalConfig encodes cfg as a current-version YAML document.
func MarshalConfig(cfg Config) ([]byte, error) {
	out := struct {
		Version int `yaml:"version"`
		Config  `yaml:",inline"`
	}{CurrentConfigVersion, cfg}
	return yaml.Marshal(out)
}
