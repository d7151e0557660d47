package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/hupe1980/pointstore"
	"github.com/hupe1980/pointstore/collection"
	"github.com/hupe1980/pointstore/model"
	"github.com/spf13/cobra"
)

type lookupFlags struct {
	configPath     string
	pointsPath     string
	collectionName string
	withPayload    bool
	withVector     bool
	shard          int
	consistency    string
	verbose        bool
}

func newLookupCmd() *cobra.Command {
	f := &lookupFlags{}

	cmd := &cobra.Command{
		Use:   "lookup <id>...",
		Short: "Look up points by id",
		Long: "Load a collection and print the records for the given ids as JSON. " +
			"Integer arguments are integer ids, anything else is treated as a UUID string. " +
			"Invalid ids are ignored. Use -- before ids that start with a dash.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, f, args)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "path to collection config (YAML or JSON)")
	cmd.Flags().StringVarP(&f.pointsPath, "points", "p", "", "path to points file (JSON array)")
	cmd.Flags().StringVar(&f.collectionName, "collection", "default", "collection name")
	cmd.Flags().BoolVar(&f.withPayload, "with-payload", false, "include payloads")
	cmd.Flags().BoolVar(&f.withVector, "with-vector", false, "include vectors")
	cmd.Flags().IntVar(&f.shard, "shard", -1, "restrict the read to one shard")
	cmd.Flags().StringVar(&f.consistency, "consistency", "", "read consistency: majority, quorum, all or a replica count")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log lookup details to stderr")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("points")

	return cmd
}

type lookupEntry struct {
	Key    model.PseudoID `json:"key"`
	Record model.Record   `json:"record"`
}

func runLookup(cmd *cobra.Command, f *lookupFlags, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := collection.LoadConfig(f.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	points, err := loadPoints(f.pointsPath)
	if err != nil {
		return fmt.Errorf("failed to load points: %w", err)
	}

	registry := collection.NewRegistry()
	coll, err := registry.Create(f.collectionName, cfg)
	if err != nil {
		return err
	}
	if err := coll.Upsert(ctx, points); err != nil {
		return fmt.Errorf("failed to load points: %w", err)
	}

	consistency, err := parseConsistency(f.consistency)
	if err != nil {
		return err
	}
	var shard *model.ShardID
	if f.shard >= 0 {
		s := model.ShardID(f.shard)
		shard = &s
	}

	opts := []pointstore.Option{}
	if f.verbose {
		opts = append(opts, pointstore.WithLogLevel(slog.LevelDebug))
	}
	svc := pointstore.New(opts...)

	req := pointstore.LookupRequest{
		CollectionName: f.collectionName,
		Values:         parseValues(args),
		WithPayload:    model.WithPayload{Enable: f.withPayload},
		WithVector:     model.WithVector{Enable: f.withVector},
	}
	result, err := svc.LookupIDs(ctx, req, pointstore.ResolverOf(registry.Acquire), consistency, shard)
	if err != nil {
		return err
	}

	entries := make([]lookupEntry, 0, len(result))
	for k, rec := range result {
		entries = append(entries, lookupEntry{Key: k, Record: rec})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key.String() < entries[j].Key.String()
	})

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// parseValues turns command-line arguments into pseudo ids.
func parseValues(args []string) []model.PseudoID {
	values := make([]model.PseudoID, 0, len(args))
	for _, arg := range args {
		if v, err := model.ParsePseudoID(json.Number(arg)); err == nil {
			values = append(values, v)
			continue
		}
		values = append(values, model.PseudoText(arg))
	}
	return values
}

func parseConsistency(s string) (*model.ReadConsistency, error) {
	var rc model.ReadConsistency
	switch strings.ToLower(s) {
	case "":
		return nil, nil
	case "majority":
		rc.Type = model.ConsistencyMajority
	case "quorum":
		rc.Type = model.ConsistencyQuorum
	case "all":
		rc.Type = model.ConsistencyAll
	default:
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid consistency %q", s)
		}
		rc = model.Factor(n)
	}
	return &rc, nil
}

type pointRecord struct {
	ID      model.PointID   `json:"id"`
	Vector  json.RawMessage `json:"vector"`
	Payload model.Payload   `json:"payload"`
}

// loadPoints reads a JSON array of points. A vector is either an array (the
// unnamed vector) or an object of named vectors.
func loadPoints(path string) ([]model.PointStruct, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []pointRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	points := make([]model.PointStruct, 0, len(raw))
	for _, r := range raw {
		p := model.PointStruct{ID: r.ID, Payload: r.Payload}
		vec := bytes.TrimSpace(r.Vector)
		switch {
		case len(vec) == 0 || bytes.Equal(vec, []byte("null")):
		case vec[0] == '[':
			var v []float32
			if err := json.Unmarshal(vec, &v); err != nil {
				return nil, fmt.Errorf("point %s: %w", r.ID, err)
			}
			p.Vectors = model.DefaultVector(v)
		default:
			if err := json.Unmarshal(vec, &p.Vectors); err != nil {
				return nil, fmt.Errorf("point %s: %w", r.ID, err)
			}
		}
		points = append(points, p)
	}
	return points, nil
}
