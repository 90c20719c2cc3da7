// internal/document/document.go
//
// Reading and writing model documents. Loading decodes the raw TOML twice:
// once loosely to detect the schema shape, then into the typed struct for
// that shape. Writing is always atomic: encode into a temp file in the
// destination directory, sync, then rename into place, so an interrupted run
// never leaves a partial file behind. Existing outputs can be preserved with
// a backup copy before the rename.

package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/maudtools/maudup/internal/kinetic"
	"github.com/maudtools/maudup/internal/migrate"
)

// LoadModel reads a kinetic model file, detects its schema shape and decodes
// the matching typed payload.
func LoadModel(path string) (migrate.Document, error) {
	data, err := readInput(path)
	if err != nil {
		return migrate.Document{}, err
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return migrate.Document{}, migrate.NewError(migrate.KindUnparseableDocument, path, err)
	}
	doc := migrate.Document{Path: path, Shape: kinetic.DetectShape(raw)}
	switch doc.Shape {
	case kinetic.ShapeCurrent:
		var model kinetic.Model
		if err := toml.Unmarshal(data, &model); err != nil {
			return migrate.Document{}, migrate.NewError(migrate.KindUnparseableDocument, path, err)
		}
		doc.Model = &model
	case kinetic.ShapeLegacyV1:
		var legacy kinetic.LegacyModel
		if err := toml.Unmarshal(data, &legacy); err != nil {
			return migrate.Document{}, migrate.NewError(migrate.KindUnparseableDocument, path, err)
		}
		doc.Legacy = &legacy
	}
	return doc, nil
}

// LoadTree reads any TOML file into a generic key tree. Used for the
// documents whose migration is a pure key rewrite (main config, experimental
// setup) rather than a typed transformation.
func LoadTree(path string) (map[string]any, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, migrate.NewError(migrate.KindUnparseableDocument, path, err)
	}
	return raw, nil
}

// WriteModel atomically writes a current-shape model document.
func WriteModel(model *kinetic.Model, path string, backup string) error {
	return WriteAtomic(path, backup, func(w io.Writer) error {
		return toml.NewEncoder(w).Encode(model)
	})
}

// WriteTree atomically writes a generic TOML key tree.
func WriteTree(tree map[string]any, path string, backup string) error {
	return WriteAtomic(path, backup, func(w io.Writer) error {
		return toml.NewEncoder(w).Encode(tree)
	})
}

// WriteAtomic writes a file through a temp-and-rename cycle. When backup is
// non-empty and the destination already exists, the old content is first
// copied to path+backup. Any failure is reported as an output write failure
// and leaves no partial destination file.
func WriteAtomic(path string, backup string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return migrate.NewError(migrate.KindOutputWriteFailure, path, err)
	}
	if backup != "" {
		if err := backupExisting(path, path+backup); err != nil {
			return migrate.NewError(migrate.KindOutputWriteFailure, path, err)
		}
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return migrate.NewError(migrate.KindOutputWriteFailure, path, err)
	}
	defer os.Remove(tmp.Name())
	if err := write(tmp); err != nil {
		tmp.Close()
		return migrate.NewError(migrate.KindOutputWriteFailure, path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return migrate.NewError(migrate.KindOutputWriteFailure, path, err)
	}
	if err := tmp.Close(); err != nil {
		return migrate.NewError(migrate.KindOutputWriteFailure, path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return migrate.NewError(migrate.KindOutputWriteFailure, path, err)
	}
	return nil
}

// CopyFile copies src to dst atomically, with the same optional backup as
// WriteAtomic. Used for files the update does not touch but that belong to
// the migrated data directory.
func CopyFile(src, dst, backup string) error {
	in, err := os.Open(src)
	if err != nil {
		return migrate.NewError(migrate.KindInputNotFound, src, err)
	}
	defer in.Close()
	return WriteAtomic(dst, backup, func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	})
}

func readInput(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, migrate.NewError(migrate.KindInputNotFound, path, err)
	}
	if info.IsDir() {
		return nil, migrate.NewError(migrate.KindInputNotFound, path, fmt.Errorf("%s is a directory", path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, migrate.NewError(migrate.KindInputNotFound, path, err)
	}
	return data, nil
}

func backupExisting(path, backupPath string) error {
	src, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.Create(backupPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
