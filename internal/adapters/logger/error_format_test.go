package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/rsym/internal/adapters/logger"
	"go.trai.ch/rsym/internal/core/domain"
	"go.trai.ch/zerr"
)

func unknownResource(namespace, typ, name string) error {
	err := zerr.With(domain.ErrUnknownResource, "namespace", namespace)
	err = zerr.With(err, "type", typ)
	return zerr.With(err, "name", name)
}

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
		wantMetadata []map[string]any
	}{
		{
			name:         "plain error",
			err:          errors.New("open rsym.yaml: permission denied"),
			wantMessages: []string{"open rsym.yaml: permission denied"},
			wantMetadata: []map[string]any{nil},
		},
		{
			name:         "bare sentinel",
			err:          domain.ErrConfigNotFound,
			wantMessages: []string{"could not find rsym.yaml or rsym.work.yaml"},
			wantMetadata: []map[string]any{{}},
		},
		{
			name:         "unknown resource keeps its key",
			err:          unknownResource("org.smart.app", "string", "missing"),
			wantMessages: []string{"unknown resource"},
			wantMetadata: []map[string]any{
				{"namespace": "org.smart.app", "type": "string", "name": "missing"},
			},
		},
		{
			name: "build failure over a cycle",
			err: func() error {
				cycle := zerr.With(domain.ErrCyclicDependency, "namespace", "org.smart.a")
				cycle = zerr.With(cycle, "cycle", "org.smart.a -> org.smart.b -> org.smart.a")
				err := zerr.Wrap(cycle, domain.ErrBuildFailed.Error())
				return zerr.With(err, "namespace", "org.smart.b")
			}(),
			wantMessages: []string{"failed to build resource views", "cyclic namespace dependency"},
			wantMetadata: []map[string]any{
				{"namespace": "org.smart.b"},
				{"namespace": "org.smart.a", "cycle": "org.smart.a -> org.smart.b -> org.smart.a"},
			},
		},
		{
			name: "config read failure over an os error",
			err: zerr.With(
				zerr.Wrap(errors.New("permission denied"), domain.ErrConfigReadFailed.Error()),
				"path", "/ws/app/rsym.yaml",
			),
			wantMessages: []string{"failed to read config file", "permission denied"},
			wantMetadata: []map[string]any{
				{"path": "/ws/app/rsym.yaml"},
				nil,
			},
		},
		{
			name: "scan failure over a walk failure",
			err: func() error {
				walk := zerr.With(zerr.Wrap(errors.New("permission denied"), "failed to walk directory"), "path", "/ws/res/values")
				return zerr.With(zerr.Wrap(walk, domain.ErrResourceScanFailed.Error()), "root", "/ws/res")
			}(),
			wantMessages: []string{
				"failed to scan resource directory",
				"failed to walk directory",
				"permission denied",
			},
			wantMetadata: []map[string]any{
				{"root": "/ws/res"},
				{"path": "/ws/res/values"},
				nil,
			},
		},
		{
			name:         "metadata on an os error lends to the os entry",
			err:          zerr.With(errors.New("no such file or directory"), "path", "/ws/lib/R.txt"),
			wantMessages: []string{"no such file or directory"},
			wantMetadata: []map[string]any{
				{"path": "/ws/lib/R.txt"},
			},
		},
		{
			name:         "nil error",
			err:          nil,
			wantMessages: nil,
			wantMetadata: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntriesExported(tt.err)

			if tt.err == nil {
				assert.Empty(t, entries, "nil error should produce no entries")
				return
			}

			assert.Len(t, entries, len(tt.wantMessages), "entry count mismatch")
			assert.Len(t, tt.wantMetadata, len(tt.wantMessages), "metadata count mismatch")

			for i, wantMsg := range tt.wantMessages {
				assert.Equal(t, wantMsg, entries[i].Message, "message mismatch at index %d", i)
				assert.Equal(t, tt.wantMetadata[i], entries[i].Metadata, "metadata mismatch at index %d", i)
			}
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "sentinel only",
			entries: []logger.ErrorEntry{{Message: "no references specified"}},
			want:    "Error: no references specified",
		},
		{
			name: "resource key sorted under the message",
			entries: []logger.ErrorEntry{{
				Message:  "unknown resource",
				Metadata: map[string]any{"type": "string", "namespace": "org.smart.app", "name": "missing"},
			}},
			want: "Error: unknown resource\n" +
				"       name: missing\n" +
				"       namespace: org.smart.app\n" +
				"       type: string",
		},
		{
			name: "causes listed with their metadata",
			entries: []logger.ErrorEntry{
				{Message: "failed to build resource views", Metadata: map[string]any{"namespace": "org.smart.app"}},
				{Message: "failed to read symbols file", Metadata: map[string]any{"path": "/ws/lib/R.txt"}},
				{Message: "no such file or directory"},
			},
			want: "Error: failed to build resource views\n" +
				"       namespace: org.smart.app\n\n" +
				"  Caused by:\n" +
				"    → failed to read symbols file\n" +
				"      path: /ws/lib/R.txt\n" +
				"    → no such file or directory",
		},
		{
			name: "multiline cause",
			entries: []logger.ErrorEntry{
				{Message: "failed to parse config file"},
				{Message: "yaml: line 3: mapping values are not allowed\nin this context"},
			},
			want: "Error: failed to parse config file\n\n" +
				"  Caused by:\n" +
				"    → yaml: line 3: mapping values are not allowed\n" +
				"      in this context",
		},
		{
			name:    "multiline head",
			entries: []logger.ErrorEntry{{Message: "invalid filter expression\nunexpected token"}},
			want:    "Error: invalid filter expression\n       unexpected token",
		},
		{
			name:    "no entries",
			entries: []logger.ErrorEntry{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := logger.FormatErrorEntriesExported(tt.entries)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCollectAndFormat_DuplicateDefinition(t *testing.T) {
	dup := zerr.With(domain.ErrDuplicateDefinition, "type", "string")
	dup = zerr.With(dup, "name", "title")
	dup = zerr.With(dup, "first_occurrence", "/ws/app/res/values/a.xml")
	dup = zerr.With(dup, "duplicate_at", "/ws/app/res/values/b.xml")
	err := zerr.With(zerr.Wrap(dup, domain.ErrBuildFailed.Error()), "namespace", "org.smart.app")

	got := logger.FormatErrorEntriesExported(logger.CollectErrorEntriesExported(err))

	want := "Error: failed to build resource views\n" +
		"       namespace: org.smart.app\n\n" +
		"  Caused by:\n" +
		"    → duplicate resource definition\n" +
		"      duplicate_at: /ws/app/res/values/b.xml\n" +
		"      first_occurrence: /ws/app/res/values/a.xml\n" +
		"      name: title\n" +
		"      type: string"
	assert.Equal(t, want, got)
}
