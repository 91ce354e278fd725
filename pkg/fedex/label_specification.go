package fedex

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type LabelImageType string

const (
	LabelImagePDF   LabelImageType = "PDF"
	LabelImagePNG   LabelImageType = "PNG"
	LabelImageZPLII LabelImageType = "ZPLII"
	LabelImageEPL2  LabelImageType = "EPL2"

	DefaultLabelImageType = LabelImageZPLII
)

// IsThermal reports whether t is a printer command language rather than an image format.
func (t LabelImageType) IsThermal() bool {
	return t == LabelImageZPLII || t == LabelImageEPL2
}

type LabelStockType string

const (
	StockPaper4X6                  LabelStockType = "PAPER_4X6"
	StockPaper4X675                LabelStockType = "PAPER_4X675"
	StockPaper4X8                  LabelStockType = "PAPER_4X8"
	StockPaper4X9                  LabelStockType = "PAPER_4X9"
	StockPaper7X475                LabelStockType = "PAPER_7X475"
	StockPaper85X11BottomHalfLabel LabelStockType = "PAPER_85X11_BOTTOM_HALF_LABEL"
	StockPaper85X11TopHalfLabel    LabelStockType = "PAPER_85X11_TOP_HALF_LABEL"
	StockPaperLetter               LabelStockType = "PAPER_LETTER"
	Stock4X6                       LabelStockType = "STOCK_4X6"
	Stock4X675LeadingDocTab        LabelStockType = "STOCK_4X675_LEADING_DOC_TAB"
	Stock4X675TrailingDocTab       LabelStockType = "STOCK_4X675_TRAILING_DOC_TAB"
	Stock4X8                       LabelStockType = "STOCK_4X8"
	Stock4X9                       LabelStockType = "STOCK_4X9"
	Stock4X9LeadingDocTab          LabelStockType = "STOCK_4X9_LEADING_DOC_TAB"
	Stock4X9TrailingDocTab         LabelStockType = "STOCK_4X9_TRAILING_DOC_TAB"
	Stock4X85TrailingDocTab        LabelStockType = "STOCK_4X85_TRAILING_DOC_TAB"
	Stock4X105TrailingDocTab       LabelStockType = "STOCK_4X105_TRAILING_DOC_TAB"
)

// LabelStockTypes lists every stock the carrier accepts.
func LabelStockTypes() []LabelStockType {
	return []LabelStockType{
		StockPaper4X6,
		StockPaper4X675,
		StockPaper4X8,
		StockPaper4X9,
		StockPaper7X475,
		StockPaper85X11BottomHalfLabel,
		StockPaper85X11TopHalfLabel,
		StockPaperLetter,
		Stock4X6,
		Stock4X675LeadingDocTab,
		Stock4X675TrailingDocTab,
		Stock4X8,
		Stock4X9,
		Stock4X9LeadingDocTab,
		Stock4X9TrailingDocTab,
		Stock4X85TrailingDocTab,
		Stock4X105TrailingDocTab,
	}
}

func (t LabelStockType) IsPaper() bool {
	return strings.HasPrefix(string(t), "PAPER_")
}

// IsThermal reports whether t is roll stock for thermal printers.
func (t LabelStockType) IsThermal() bool {
	return strings.HasPrefix(string(t), "STOCK_")
}

var ErrIncompatibleLabelSpecification = errors.New("incompatible label image and stock type")

type LabelSpecification struct {
	ImageType      LabelImageType `json:"imageType"`
	LabelStockType LabelStockType `json:"labelStockType"`
}

// Validate checks that the image type can be printed on the stock type:
// PDF and PNG need PAPER_* stock, ZPLII and EPL2 need STOCK_* roll stock.
func (l LabelSpecification) Validate() error {
	err := validation.ValidateStruct(&l,
		validation.Field(&l.ImageType, validation.Required, validation.In(LabelImagePDF, LabelImagePNG, LabelImageZPLII, LabelImageEPL2)),
		validation.Field(&l.LabelStockType, validation.Required, validation.In(toAny(LabelStockTypes())...)),
	)
	if err != nil {
		return err
	}

	switch l.ImageType {
	case LabelImagePDF, LabelImagePNG:
		if !l.LabelStockType.IsPaper() {
			return fmt.Errorf("%w: %s requires PAPER_* stock, got %s", ErrIncompatibleLabelSpecification, l.ImageType, l.LabelStockType)
		}
	case LabelImageZPLII, LabelImageEPL2:
		if !l.LabelStockType.IsThermal() {
			return fmt.Errorf("%w: %s requires STOCK_* stock, got %s", ErrIncompatibleLabelSpecification, l.ImageType, l.LabelStockType)
		}
	}
	return nil
}

// Validate checks the parts of the request this service is responsible for.
func (r ShipmentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.LabelResponseOptions, validation.Required),
		validation.Field(&r.AccountNumber, validation.By(func(any) error {
			return validation.Validate(r.AccountNumber.Value, validation.Required)
		})),
		validation.Field(&r.RequestedShipment, validation.By(func(any) error {
			s := r.RequestedShipment
			return validation.ValidateStruct(&s,
				validation.Field(&s.ShipDatestamp, validation.Required, validation.Date("2006-01-02")),
				validation.Field(&s.ServiceType, validation.Required, validation.In(toAny(ServiceTypes())...)),
				validation.Field(&s.Recipients, validation.Length(1, 1)),
				validation.Field(&s.LabelSpecification),
				validation.Field(&s.RequestedPackageLineItems, validation.Length(1, 1)),
			)
		})),
	)
}

func toAny[T any](values []T) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
