// Package feed construye el feed RSS 2.0 de productos con el namespace de Google Merchant (g:).
package feed

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
)

// NamespaceGoogle namespace de los atributos de Google Merchant Center.
const NamespaceGoogle = "http://base.google.com/ns/1.0"

var _ usecase.ProductFeedBuilder = (*XMLFeedBuilder)(nil)

// XMLFeedBuilder implementa usecase.ProductFeedBuilder con etree.
type XMLFeedBuilder struct{}

// NewXMLFeedBuilder construye el builder.
func NewXMLFeedBuilder() *XMLFeedBuilder { return &XMLFeedBuilder{} }

// BuildFeed arma el documento y calcula el etag sobre su forma canónica (C14N), antes de indentar.
// El documento no lleva fecha de generación: mismo catálogo, mismo etag.
func (b *XMLFeedBuilder) BuildFeed(_ context.Context, sheet usecase.CatalogSheet) ([]byte, string, error) {
	doc := etree.NewDocument()
	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	rss.CreateAttr("xmlns:g", NamespaceGoogle)

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(sheet.Title)
	channel.CreateElement("link").SetText(sheet.Link)
	channel.CreateElement("description").SetText("Productos de " + sheet.Title)

	for _, item := range sheet.Items {
		addItem(channel, item, sheet.Currency)
	}

	compact, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("feed: serializar: %w", err)
	}
	etag, err := canonicalETag(compact)
	if err != nil {
		return nil, "", err
	}

	doc.Indent(2)
	body, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("feed: serializar: %w", err)
	}
	return append([]byte(xml.Header), body...), etag, nil
}

func addItem(channel *etree.Element, item usecase.CatalogItem, currency string) {
	p := item.Product
	el := channel.CreateElement("item")
	el.CreateElement("g:id").SetText(p.ID)
	el.CreateElement("title").SetText(p.Title)
	el.CreateElement("description").SetText(p.Description)
	el.CreateElement("link").SetText(item.Link)
	for i, img := range item.ImageURLs {
		if i == 0 {
			el.CreateElement("g:image_link").SetText(img)
			continue
		}
		el.CreateElement("g:additional_image_link").SetText(img)
	}
	el.CreateElement("g:price").SetText(strings.TrimSpace(p.Price.StringFixed(2) + " " + currency))
	el.CreateElement("g:availability").SetText(availability(p.Stock))
	el.CreateElement("g:condition").SetText("new")
	el.CreateElement("g:quantity").SetText(strconv.Itoa(p.Stock))
	gender, age := googleGender(p.Gender)
	el.CreateElement("g:gender").SetText(gender)
	el.CreateElement("g:age_group").SetText(age)
	for _, size := range p.Sizes {
		el.CreateElement("g:size").SetText(size)
	}
	if len(p.Tags) > 0 {
		el.CreateElement("g:product_type").SetText(strings.Join(p.Tags, " > "))
	}
}

func availability(stock int) string {
	if stock > 0 {
		return "in_stock"
	}
	return "out_of_stock"
}

// googleGender traduce el género del catálogo a g:gender y g:age_group.
func googleGender(g string) (gender, ageGroup string) {
	switch g {
	case "men":
		return "male", "adult"
	case "women":
		return "female", "adult"
	case "kid":
		return "unisex", "kids"
	default:
		return "unisex", "adult"
	}
}

// canonicalETag etag fuerte: SHA-256 de la forma canónica del documento.
func canonicalETag(doc []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("feed: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return `"` + hex.EncodeToString(sum[:]) + `"`, nil
}
