package pdf

import (
	"fmt"
	"strings"

	"github.com/bhagyagroups/frontoffice/internal/models"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

const (
	companyName    = "Bhagya Groups"
	companyAddress = "123 Business Road, Commerce City, 12345"
)

func amount(v float64) string { return fmt.Sprintf("Rs. %.2f", v) }

// DocumentPDF renders a saved invoice or estimate as an A4 PDF.
func DocumentPDF(doc models.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		Build()
	m := maroto.New(cfg)

	// Header: company identity on the left, document type and number on the right.
	m.AddRow(10,
		text.NewCol(7, companyName, props.Text{Size: 16, Style: fontstyle.Bold}),
		text.NewCol(5, strings.ToUpper(string(doc.Type)), props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(7, companyAddress, props.Text{Size: 9}),
		text.NewCol(5, "#"+doc.Number, props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(8, col.New(12))

	m.AddRow(6, text.NewCol(12, "Billed To:", props.Text{Size: 9, Style: fontstyle.Bold}))
	m.AddRow(6,
		text.NewCol(8, doc.ClientName, props.Text{Size: 10}),
		text.NewCol(4, "Date: "+doc.Date, props.Text{Size: 9, Align: align.Right}),
	)
	if doc.ClientAddress != "" {
		m.AddRow(6, text.NewCol(12, doc.ClientAddress, props.Text{Size: 9}))
	}
	m.AddRow(6, col.New(12))

	// Item table
	m.AddRow(7,
		text.NewCol(6, "Product", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(2, "Price", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Qty", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Total", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)
	for _, it := range doc.Items {
		m.AddRow(6,
			text.NewCol(6, it.Name, props.Text{Size: 9}),
			text.NewCol(2, amount(it.Price), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, fmt.Sprintf("%d", it.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, amount(it.Price*float64(it.Quantity)), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(4, col.New(12))

	m.AddRow(6,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, amount(doc.Subtotal), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(6,
		col.New(8),
		text.NewCol(2, "GST (18%)", props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, amount(doc.GSTAmount), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(7,
		col.New(8),
		text.NewCol(2, "Grand Total", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, amount(doc.Total), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)

	m.AddRow(12, col.New(12))
	m.AddRow(6, text.NewCol(12, "Thank you for your business!", props.Text{Size: 9, Align: align.Center}))

	result, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return result.GetBytes(), nil
}
