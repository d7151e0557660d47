package collection

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// StorageTypeV5 is the legacy vector storage selector.
//
// Deprecated: replaced by VectorDataConfig.OnDisk and SegmentConfig.Appendable.
type StorageTypeV5 string

const (
	// StorageInMemoryV5 keeps vectors in memory; the zero value means the same.
	StorageInMemoryV5 StorageTypeV5 = "in_memory"
	// StorageMmapV5 keeps vectors in mmap files.
	StorageMmapV5 StorageTypeV5 = "mmap"
)

func (s StorageTypeV5) isMmap() bool { return s == StorageMmapV5 }

// UnmarshalYAML accepts both the bare form (`mmap`) and the tagged form
// (`{type: mmap}`) that legacy segment files were written with.
func (s *StorageTypeV5) UnmarshalYAML(value *yaml.Node) error {
	var name string
	switch value.Kind {
	case yaml.ScalarNode:
		if err := value.Decode(&name); err != nil {
			return err
		}
	case yaml.MappingNode:
		var tagged struct {
			Type string `yaml:"type"`
		}
		if err := value.Decode(&tagged); err != nil {
			return err
		}
		name = tagged.Type
	default:
		return fmt.Errorf("line %d: storage_type must be a string or a {type: ...} mapping", value.Line)
	}

	switch StorageTypeV5(name) {
	case "", StorageInMemoryV5:
		*s = StorageInMemoryV5
	case StorageMmapV5:
		*s = StorageMmapV5
	default:
		return fmt.Errorf("line %d: unknown storage_type %q", value.Line, name)
	}
	return nil
}

// VectorDataConfigV5 is the legacy per-vector config.
//
// Deprecated: use VectorDataConfig.
type VectorDataConfigV5 struct {
	Size               int                 `yaml:"size" json:"size"`
	Distance           Distance            `yaml:"distance" json:"distance"`
	HnswConfig         *HnswConfig         `yaml:"hnsw_config,omitempty" json:"hnsw_config,omitempty"`
	QuantizationConfig *QuantizationConfig `yaml:"quantization_config,omitempty" json:"quantization_config,omitempty"`
	OnDisk             *bool               `yaml:"on_disk,omitempty" json:"on_disk,omitempty"`
}

// SegmentConfigV5 is the legacy segment config.
//
// Deprecated: use SegmentConfig.
type SegmentConfigV5 struct {
	VectorData         map[string]VectorDataConfigV5 `yaml:"vector_data" json:"vector_data"`
	Index              IndexConfig                   `yaml:"index" json:"index"`
	StorageType        StorageTypeV5                 `yaml:"storage_type" json:"storage_type"`
	PayloadStorageType PayloadStorageType            `yaml:"payload_storage_type" json:"payload_storage_type"`
	QuantizationConfig *QuantizationConfig           `yaml:"quantization_config,omitempty" json:"quantization_config,omitempty"`
}

// SegmentStateV5 is the legacy segment state.
//
// Deprecated: use SegmentState.
type SegmentStateV5 struct {
	Version *uint64         `yaml:"version,omitempty" json:"version,omitempty"`
	Config  SegmentConfigV5 `yaml:"config" json:"config"`
}

// Migrate converts a legacy segment config to the current layout.
//
// A per-vector HNSW config takes precedence over the segment index. A
// per-vector quantization config survives only if the segment had one, since
// older versions wrote it on vectors by mistake. OnDisk falls back to the mmap
// storage type, and only in-memory segments are appendable.
func (old SegmentConfigV5) Migrate() SegmentConfig {
	vectorData := make(map[string]VectorDataConfig, len(old.VectorData))
	for name, v := range old.VectorData {
		index := old.Index
		if v.HnswConfig != nil {
			index = HNSWIndex(*v.HnswConfig)
		}

		var quantization *QuantizationConfig
		if old.QuantizationConfig != nil {
			quantization = v.QuantizationConfig
		}

		onDisk := old.StorageType.isMmap()
		if v.OnDisk != nil {
			onDisk = *v.OnDisk
		}

		vectorData[name] = VectorDataConfig{
			Size:               v.Size,
			Distance:           v.Distance,
			Index:              index,
			QuantizationConfig: quantization,
			OnDisk:             onDisk,
		}
	}

	return SegmentConfig{
		VectorData:         vectorData,
		Appendable:         !old.StorageType.isMmap(),
		PayloadStorageType: old.PayloadStorageType,
	}
}

// Migrate converts a legacy segment state, keeping its version.
func (old SegmentStateV5) Migrate() SegmentState {
	return SegmentState{
		Version: old.Version,
		Config:  old.Config.Migrate(),
	}
}
