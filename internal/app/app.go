// Package app implements the application layer for provcache.
package app

import (
	"bytes"
	"context"
	"encoding/json"

	"go.trai.ch/provcache/internal/core/domain"
	"go.trai.ch/provcache/internal/core/ports"
	"go.trai.ch/provcache/internal/engine/pkgconfig"
	"go.trai.ch/provcache/internal/engine/scancache"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	storage *scancache.Storage
	configs *pkgconfig.Provider
	logger  ports.Logger
}

// New creates a new App instance.
func New(storage *scancache.Storage, configs *pkgconfig.Provider, log ports.Logger) *App {
	return &App{
		storage: storage,
		configs: configs,
		logger:  log,
	}
}

// AddDocument is the input document of Add.
type AddDocument struct {
	// ID holds package coordinates in the form "Type:Namespace:Name:Version".
	ID     string            `json:"id"`
	Result domain.ScanResult `json:"result"`
}

// ParseAddDocument decodes an AddDocument. Unknown fields are rejected.
func ParseAddDocument(data []byte) (domain.Identifier, domain.ScanResult, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var doc AddDocument
	if err := decoder.Decode(&doc); err != nil {
		return domain.Identifier{}, domain.ScanResult{}, zerr.Wrap(err, domain.ErrInputReadFailed.Error())
	}

	id, err := domain.ParseIdentifier(doc.ID)
	if err != nil {
		return domain.Identifier{}, domain.ScanResult{}, err
	}

	return id, doc.Result, nil
}

// Add stores result for id after it passed the validation gate.
func (a *App) Add(ctx context.Context, id domain.Identifier, result domain.ScanResult) error {
	if err := a.storage.Add(ctx, id, result); err != nil {
		return err
	}

	a.logger.Info("stored scan result", "id", id.String(), "scanner", result.Scanner.String())
	return nil
}

// Read returns every result stored for id.
func (a *App) Read(ctx context.Context, id domain.Identifier) (domain.ScanResultContainer, error) {
	return a.storage.ReadAll(ctx, id)
}

// ReadCompatible returns the results usable for the package snapshot when
// scanning with scanner, and logs the access statistics afterwards.
func (a *App) ReadCompatible(
	ctx context.Context,
	pkg domain.Package,
	scanner domain.ScannerDetails,
) (domain.ScanResultContainer, error) {
	container, err := a.storage.ReadCompatible(ctx, pkg, scanner)
	if err != nil {
		return domain.ScanResultContainer{}, err
	}

	stats := a.storage.Stats()
	a.logger.Info("scan result cache access", "reads", stats.Reads, "hits", stats.Hits)

	return container, nil
}

// PathExcludes returns the path excludes configured for the package snapshot.
// The boolean reports whether a package configuration matched at all.
func (a *App) PathExcludes(pkg domain.Package) ([]domain.PathExclude, bool) {
	if _, ok := a.configs.Get(pkg.ID, pkg.Provenance); !ok {
		return nil, false
	}
	return a.configs.PathExcludes(pkg.ID, pkg.Provenance), true
}

// IsExcluded returns the path exclude matching path for the package snapshot.
func (a *App) IsExcluded(pkg domain.Package, path string) (domain.PathExclude, bool) {
	return a.configs.IsExcluded(pkg.ID, pkg.Provenance, path)
}
