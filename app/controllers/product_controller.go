package controllers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/Duvhier/jylclean-back/app/models"
	"github.com/Duvhier/jylclean-back/app/services"
	"github.com/Duvhier/jylclean-back/pkg/ctx"
	"github.com/Duvhier/jylclean-back/pkg/storage"
)

// maxImageBytes caps product image uploads at 5 MB.
const maxImageBytes = 5 << 20

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// Index lists the catalogue.
func (p *ProductController) Index(c *ctx.Context) {
	products, err := p.products.List(c.Context())
	if err != nil {
		c.FromError(err)
		return
	}
	c.Success(products)
}

// Show returns one product.
func (p *ProductController) Show(c *ctx.Context) {
	product, err := p.products.Get(c.Context(), c.Param("id"))
	if err != nil {
		c.FromError(err)
		return
	}
	c.Success(product)
}

// Create adds a catalogue entry.
func (p *ProductController) Create(c *ctx.Context) {
	var input services.ProductInput
	if !c.BindJSON(&input) {
		return
	}

	product, err := p.products.Create(c.Context(), input)
	if err != nil {
		c.FromError(err)
		return
	}
	c.Created(product)
}

// Update applies a partial update. Absent fields stay untouched; present
// zero values are written.
func (p *ProductController) Update(c *ctx.Context) {
	var patch models.ProductPatch
	if !c.BindJSON(&patch) {
		return
	}

	product, err := p.products.Update(c.Context(), c.Param("id"), patch)
	if err != nil {
		c.FromError(err)
		return
	}
	c.Success(product)
}

// Delete removes a catalogue entry.
func (p *ProductController) Delete(c *ctx.Context) {
	if err := p.products.Delete(c.Context(), c.Param("id")); err != nil {
		c.FromError(err)
		return
	}
	c.SuccessMessage("Product deleted", nil)
}

// UploadImage stores a product photo on the configured disk and records
// its public URL on the product.
func (p *ProductController) UploadImage(c *ctx.Context) {
	if err := c.R.ParseMultipartForm(maxImageBytes); err != nil {
		c.Error(http.StatusBadRequest, "Invalid upload")
		return
	}

	file, header, err := c.R.FormFile("image")
	if err != nil {
		c.Error(http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		c.Error(http.StatusBadRequest, "Unsupported image type")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		c.FromError(err)
		return
	}

	path := fmt.Sprintf("products/%s-%d%s", c.Param("id"), time.Now().UnixNano(), ext)
	if err := storage.Put(path, data); err != nil {
		c.FromError(err)
		return
	}

	product, err := p.products.SetImage(c.Context(), c.Param("id"), storage.URL(path))
	if err != nil {
		// The product vanished between upload and update; drop the orphan file.
		_ = storage.Delete(path)
		c.FromError(err)
		return
	}
	c.Success(product)
}
