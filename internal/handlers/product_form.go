package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Photo ceiling in bytes; the create/update contract is multipart form data
// with the photo inlined on the document.
const maxPhotoBytes = 1_000_000

type productForm struct {
	Name           string
	NameSet        bool
	Description    string
	DescriptionSet bool
	Price          float64
	PriceSet       bool
	Category       primitive.ObjectID
	CategorySet    bool
	Quantity       int
	QuantitySet    bool
	Shipping       bool
	ShippingSet    bool

	PhotoData        []byte
	PhotoContentType string
	PhotoSize        int64
	PhotoSet         bool
}

func parseProductForm(c *gin.Context) (productForm, error) {
	if err := c.Request.ParseMultipartForm(8 << 20); err != nil {
		return productForm{}, err
	}

	form := productForm{}

	if value, ok := c.GetPostForm("name"); ok {
		form.Name = strings.TrimSpace(value)
		form.NameSet = true
	}

	if value, ok := c.GetPostForm("description"); ok {
		form.Description = strings.TrimSpace(value)
		form.DescriptionSet = true
	}

	if value, ok := c.GetPostForm("price"); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return productForm{}, errors.New("invalid price")
		}
		form.Price = parsed
		form.PriceSet = true
	}

	if value, ok := c.GetPostForm("quantity"); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return productForm{}, errors.New("invalid quantity")
		}
		form.Quantity = parsed
		form.QuantitySet = true
	}

	if value, ok := c.GetPostForm("category"); ok {
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(value))
		if err != nil {
			return productForm{}, errors.New("invalid category id")
		}
		form.Category = id
		form.CategorySet = true
	}

	if value, ok := c.GetPostForm("shipping"); ok {
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return productForm{}, errors.New("shipping must be boolean")
		}
		form.Shipping = parsed
		form.ShippingSet = true
	}

	file, err := c.FormFile("photo")
	if err == nil {
		form.PhotoSet = true
		form.PhotoSize = file.Size

		// oversized photos are rejected by validation; don't buffer them
		if file.Size <= maxPhotoBytes {
			in, err := file.Open()
			if err != nil {
				return productForm{}, err
			}
			defer in.Close()

			data, err := io.ReadAll(in)
			if err != nil {
				return productForm{}, err
			}
			form.PhotoData = data
			form.PhotoContentType = file.Header.Get("Content-Type")
		}
	} else if !errors.Is(err, http.ErrMissingFile) && !strings.Contains(err.Error(), "no such file") {
		return productForm{}, err
	}

	return form, nil
}

// validateProductForm returns the first failing field's message, or "" when
// the form is complete. The photo is only mandatory on create.
func validateProductForm(form productForm, requirePhoto bool) string {
	switch {
	case !form.NameSet || form.Name == "":
		return "Name is Required"
	case !form.DescriptionSet || form.Description == "":
		return "Description is Required"
	case !form.PriceSet || form.Price < 0:
		return "Price is Required"
	case !form.CategorySet:
		return "Category is Required"
	case !form.QuantitySet || form.Quantity < 0:
		return "Quantity is Required"
	case (requirePhoto && !form.PhotoSet) || (form.PhotoSet && form.PhotoSize > maxPhotoBytes):
		return "photo is Required and should be less than 1mb"
	}
	return ""
}
