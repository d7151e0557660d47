package collection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig_Current(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
version: 6
shard_number: 3
replication_factor: 2
payload_compression: zstd
segment:
  vector_data:
    "":
      size: 4
      distance: Cosine
      index:
        type: hnsw
        options:
          m: 16
          ef_construct: 100
          full_scan_threshold: 10000
  appendable: true
  payload_storage_type: on_disk
`))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.ShardNumber)
	assert.Equal(t, 2, cfg.ReplicationFactor)
	assert.Equal(t, "zstd", cfg.PayloadCompression)
	assert.Equal(t, PayloadOnDisk, cfg.Segment.PayloadStorageType)
	v := cfg.Segment.VectorData[""]
	assert.Equal(t, 4, v.Size)
	assert.Equal(t, IndexHNSW, v.Index.Type)
	require.NotNil(t, v.Index.Hnsw)
	assert.Equal(t, 16, v.Index.Hnsw.M)
}

func TestParseConfig_JSONAndDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"segment": {"vector_data": {"text": {"size": 8, "distance": "Dot", "index": {"type": "plain"}}}}}`))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.ShardNumber)
	assert.Equal(t, 1, cfg.ReplicationFactor)
	assert.Equal(t, PayloadInMemory, cfg.Segment.PayloadStorageType)
	assert.Equal(t, 8, cfg.Segment.VectorData["text"].Size)
}

func TestParseConfig_Invalid(t *testing.T) {
	for name, doc := range map[string]string{
		"no_vectors":   `shard_number: 1`,
		"bad_yaml":     `shard_number: [`,
		"bad_distance": `segment: {vector_data: {"": {size: 4, distance: Jaccard}}}`,
		"bad_storage":  `segment: {vector_data: {"": {size: 4, distance: Dot}}, payload_storage_type: tape}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParseConfig_LegacyV5(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
version: 5
segment:
  vector_data:
    "":
      size: 4
      distance: Cosine
      quantization_config:
        scalar: {type: int8}
    image:
      size: 8
      distance: Euclid
      hnsw_config: {m: 32, ef_construct: 200, full_scan_threshold: 5000}
      on_disk: false
  index:
    type: hnsw
    options: {m: 16, ef_construct: 100, full_scan_threshold: 10000}
  storage_type: mmap
  payload_storage_type: in_memory
`))
	require.NoError(t, err)

	seg := cfg.Segment
	assert.False(t, seg.Appendable)
	assert.Equal(t, PayloadInMemory, seg.PayloadStorageType)

	def := seg.VectorData[""]
	assert.Equal(t, 16, def.Index.Hnsw.M, "falls back to segment index")
	assert.True(t, def.OnDisk, "derived from mmap storage")
	assert.Nil(t, def.QuantizationConfig, "dropped without segment quantization")

	img := seg.VectorData["image"]
	assert.Equal(t, 32, img.Index.Hnsw.M, "vector hnsw config wins")
	assert.False(t, img.OnDisk, "explicit on_disk wins")
}

func TestParseConfig_LegacyV5StorageType(t *testing.T) {
	doc := func(storage string) []byte {
		return []byte(`
version: 5
segment:
  vector_data:
    "": {size: 4, distance: Dot}
  index: {type: plain}
  storage_type: ` + storage + `
`)
	}

	tests := []struct {
		name       string
		storage    string
		appendable bool
	}{
		{"bare mmap", "mmap", false},
		{"tagged mmap", "{type: mmap}", false},
		{"bare in_memory", "in_memory", true},
		{"tagged in_memory", "{type: in_memory}", true},
		{"json tagged mmap", `{"type": "mmap"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig(doc(tt.storage))
			require.NoError(t, err)
			assert.Equal(t, tt.appendable, cfg.Segment.Appendable)
			assert.Equal(t, !tt.appendable, cfg.Segment.VectorData[""].OnDisk)
		})
	}

	for _, bad := range []string{"tape", "{type: tape}", "[mmap]"} {
		_, err := ParseConfig(doc(bad))
		assert.ErrorIs(t, err, ErrInvalidConfig, bad)
	}
}

func TestSegmentConfigV5_Migrate(t *testing.T) {
	yes := true
	scalar := &QuantizationConfig{Scalar: &ScalarQuantization{Type: "int8"}}
	version := uint64(42)

	old := SegmentStateV5{
		Version: &version,
		Config: SegmentConfigV5{
			VectorData: map[string]VectorDataConfigV5{
				"a": {Size: 4, Distance: DistanceDot, QuantizationConfig: scalar},
				"b": {Size: 2, Distance: DistanceDot, OnDisk: &yes},
			},
			Index:              IndexConfig{Type: IndexPlain},
			QuantizationConfig: scalar,
			PayloadStorageType: PayloadOnDisk,
		},
	}

	st := old.Migrate()
	require.NotNil(t, st.Version)
	assert.Equal(t, uint64(42), *st.Version)

	seg := st.Config
	assert.True(t, seg.Appendable, "default storage type is in-memory")
	assert.Equal(t, PayloadOnDisk, seg.PayloadStorageType)
	assert.Equal(t, scalar, seg.VectorData["a"].QuantizationConfig)
	assert.False(t, seg.VectorData["a"].OnDisk)
	assert.Nil(t, seg.VectorData["b"].QuantizationConfig)
	assert.True(t, seg.VectorData["b"].OnDisk)
	assert.Equal(t, IndexPlain, seg.VectorData["b"].Index.Type)
}

func TestMarshalConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig(4, DistanceCosine)
	cfg.ShardNumber = 2
	cfg.PayloadCompression = "lz4"

	b, err := MarshalConfig(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(b), "version: 6")

	path := filepath.Join(t.TempDir(), "collection.yaml")
	require.NoError(t, os.WriteFile(path, b, 0o600))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
