package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/pkg/config"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// CatalogExportUseCase exporta el catálogo como hoja PDF y como feed XML.
type CatalogExportUseCase struct {
	repo repository.ProductRepository
	pdf  CatalogPDFGenerator
	feed ProductFeedBuilder
	cfg  config.CatalogConfig
	log  *logger.Logger
	now  func() time.Time
}

// NewCatalogExportUseCase construye el caso de uso inyectando los exportadores.
func NewCatalogExportUseCase(
	repo repository.ProductRepository,
	pdf CatalogPDFGenerator,
	feed ProductFeedBuilder,
	cfg config.CatalogConfig,
	log *logger.Logger,
) *CatalogExportUseCase {
	return &CatalogExportUseCase{repo: repo, pdf: pdf, feed: feed, cfg: cfg, log: log.Component("catalog_export"), now: time.Now}
}

// CatalogPDF genera el PDF con los primeros ExportLimit productos. Devuelve los bytes y el nombre de archivo.
func (uc *CatalogExportUseCase) CatalogPDF(ctx context.Context) ([]byte, string, error) {
	sheet, err := uc.sheet(ctx)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.GenerateCatalogPDF(ctx, sheet)
	if err != nil {
		return nil, "", uc.internal(fmt.Errorf("generar pdf: %w", err))
	}
	return b, fmt.Sprintf("catalogo-%s.pdf", sheet.GeneratedAt.Format("20060102")), nil
}

// Feed construye el feed XML y su etag.
func (uc *CatalogExportUseCase) Feed(ctx context.Context) ([]byte, string, error) {
	sheet, err := uc.sheet(ctx)
	if err != nil {
		return nil, "", err
	}
	body, etag, err := uc.feed.BuildFeed(ctx, sheet)
	if err != nil {
		return nil, "", uc.internal(fmt.Errorf("construir feed: %w", err))
	}
	return body, etag, nil
}

func (uc *CatalogExportUseCase) sheet(ctx context.Context) (CatalogSheet, error) {
	products, err := uc.repo.List(ctx, uc.cfg.ExportLimit, 0)
	if err != nil {
		return CatalogSheet{}, uc.internal(fmt.Errorf("listar productos: %w", err))
	}
	sheet := CatalogSheet{
		Title:       uc.cfg.FeedTitle,
		Link:        uc.cfg.PublicURL,
		Currency:    uc.cfg.Currency,
		GeneratedAt: uc.now().UTC(),
		Items:       make([]CatalogItem, 0, len(products)),
	}
	for _, p := range products {
		resp := toProductResponse(p)
		images := make([]string, 0, len(resp.Images))
		for _, u := range resp.Images {
			images = append(images, uc.cfg.ImageURL(u))
		}
		sheet.Items = append(sheet.Items, CatalogItem{
			Product:   *resp,
			Link:      uc.cfg.ProductURL(p.Slug),
			ImageURLs: images,
		})
	}
	return sheet, nil
}

func (uc *CatalogExportUseCase) internal(err error) error {
	uc.log.Error().Err(err).Msg("exportación del catálogo")
	return domain.Internal()
}
