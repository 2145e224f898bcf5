package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func completeForm() productForm {
	return productForm{
		Name:           "Laptop",
		NameSet:        true,
		Description:    "A powerful laptop",
		DescriptionSet: true,
		Price:          1499.99,
		PriceSet:       true,
		Category:       primitive.NewObjectID(),
		CategorySet:    true,
		Quantity:       30,
		QuantitySet:    true,

		PhotoData:        []byte{0xff, 0xd8},
		PhotoContentType: "image/jpeg",
		PhotoSize:        2,
		PhotoSet:         true,
	}
}

func TestValidateProductFormAccepts(t *testing.T) {
	if msg := validateProductForm(completeForm(), true); msg != "" {
		t.Fatalf("expected complete form to pass, got %q", msg)
	}
}

func TestValidateProductFormFieldMessages(t *testing.T) {
	tests := []struct {
		mutate func(*productForm)
		want   string
	}{
		{func(f *productForm) { f.Name = ""; f.NameSet = false }, "Name is Required"},
		{func(f *productForm) { f.Description = ""; f.DescriptionSet = false }, "Description is Required"},
		{func(f *productForm) { f.PriceSet = false }, "Price is Required"},
		{func(f *productForm) { f.Price = -1 }, "Price is Required"},
		{func(f *productForm) { f.CategorySet = false }, "Category is Required"},
		{func(f *productForm) { f.QuantitySet = false }, "Quantity is Required"},
		{func(f *productForm) { f.Quantity = -1 }, "Quantity is Required"},
		{func(f *productForm) { f.PhotoSet = false }, "photo is Required and should be less than 1mb"},
		{func(f *productForm) { f.PhotoSize = maxPhotoBytes + 1 }, "photo is Required and should be less than 1mb"},
	}

	for _, tt := range tests {
		form := completeForm()
		tt.mutate(&form)
		if got := validateProductForm(form, true); got != tt.want {
			t.Errorf("validateProductForm = %q, want %q", got, tt.want)
		}
	}
}

func TestValidateProductFormPhotoOptionalOnUpdate(t *testing.T) {
	form := completeForm()
	form.PhotoSet = false
	form.PhotoData = nil
	form.PhotoSize = 0

	if msg := validateProductForm(form, false); msg != "" {
		t.Fatalf("expected photo to be optional on update, got %q", msg)
	}
}

func TestValidateProductFormOversizedPhotoRejectedOnUpdate(t *testing.T) {
	form := completeForm()
	form.PhotoSize = maxPhotoBytes + 1

	if msg := validateProductForm(form, false); msg != "photo is Required and should be less than 1mb" {
		t.Fatalf("expected oversized photo to be rejected on update, got %q", msg)
	}
}

func TestValidateProductFormZeroPriceAllowed(t *testing.T) {
	form := completeForm()
	form.Price = 0

	if msg := validateProductForm(form, true); msg != "" {
		t.Fatalf("price zero is a valid non-negative price, got %q", msg)
	}
}
