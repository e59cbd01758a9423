package notify

import (
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// RenderTicketPDF produces a one-page ticket: operator, passenger and the QR
// code the driver scans at check-in.
func RenderTicketPDF(job TicketJob) ([]byte, error) {
	m := maroto.New()

	m.AddRow(16,
		text.NewCol(12, job.OperatorName, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	m.AddRow(10,
		text.NewCol(12, "Passenger Ticket", props.Text{
			Size:  12,
			Align: align.Center,
		}),
	)
	m.AddRow(14,
		col.New(12).Add(
			text.New("Passenger: "+job.PassengerName, props.Text{Top: 2}),
			text.New("Ticket code: "+job.QRCodeValue, props.Text{Top: 7}),
		),
	)
	m.AddRow(70,
		code.NewQrCol(12, job.QRCodeValue, props.Rect{
			Center:  true,
			Percent: 90,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, "Present this code to the driver when boarding.", props.Text{
			Size:  9,
			Align: align.Center,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
