package filekeeper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/drstein77/goldcatalog/internal/models"
	"go.uber.org/zap"
)

type Log interface {
	Info(string, ...zap.Field)
}

// FileKeeper reads the catalog from a local JSON file. It is the default
// catalog source when no database DSN is configured.
type FileKeeper struct {
	path func() string
	log  Log
}

func NewFileKeeper(path func() string, log Log) *FileKeeper {
	return &FileKeeper{
		path: path,
		log:  log,
	}
}

// LoadProducts reads and decodes the catalog file. The file must contain a
// JSON array of products; an empty array is valid.
func (kp *FileKeeper) LoadProducts(ctx context.Context) ([]models.Product, error) {
	name := kp.path()

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", name, err)
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", name, err)
	}

	kp.log.Info("Catalog file read", zap.String("path", name), zap.Int("count", len(products)))
	return products, nil
}

func (kp *FileKeeper) Ping(ctx context.Context) bool {
	_, err := os.Stat(kp.path())
	return err == nil
}

func (kp *FileKeeper) Close() bool {
	return true
}
