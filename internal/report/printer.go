// Package report renders weather reports as console text.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/i474232898/galicia-weather-report/internal/common"
	"github.com/i474232898/galicia-weather-report/internal/weather"
)

// NoDataMessage is printed when no location contributed data.
const NoDataMessage = "No hay datos disponibles para analizar."

// Printer writes reports to out.
type Printer struct {
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// PrintFailure prints the diagnostic for a location that contributed no data.
// It matches weather.FailureFunc.
func (p *Printer) PrintFailure(loc weather.Location, err error) {
	var apiErr *weather.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintf(p.out, "Error en la respuesta de la API para (%g, %g): %s\n", loc.Latitude, loc.Longitude, apiErr.Body)
		return
	}

	// The typed errors already name the coordinates, print only their cause.
	cause := err
	var transportErr *weather.TransportError
	var decodeErr *weather.DecodeError
	if errors.As(err, &transportErr) || errors.As(err, &decodeErr) {
		if inner := errors.Unwrap(err); inner != nil {
			cause = inner
		}
	}
	fmt.Fprintf(p.out, "Error al obtener datos para (%g, %g): %v\n", loc.Latitude, loc.Longitude, cause)
}

// PrintReport prints one block per location followed by the final summary, or
// only NoDataMessage for an empty report.
func (p *Printer) PrintReport(r weather.Report) {
	if r.Empty() {
		fmt.Fprintln(p.out, NoDataMessage)
		return
	}

	for _, loc := range r.Locations {
		p.printLocation(loc)
	}
	p.printSummary(r.Rainiest, r.Hottest)
}

func (p *Printer) printLocation(s weather.LocationSummary) {
	fmt.Fprintf(p.out, "%s\n", s.Name)
	fmt.Fprintf(p.out, "- Lluvia total: %.2f mm\n", s.TotalRain)
	fmt.Fprintf(p.out, "- Temp. media: %s\n", common.FormatOptional("%.2f°C", s.AverageTemperature))
	fmt.Fprintf(p.out, "- Día más caluroso: %s\n", common.FormatOptional("%.2f°C", s.HottestDay))
	fmt.Fprintf(p.out, "- Día más frío: %s\n", common.FormatOptional("%.2f°C", s.ColdestDay))
}

func (p *Printer) printSummary(rainiest, hottest *weather.LocationResult) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "**Resumen Final**:")

	if rainiest != nil {
		fmt.Fprintf(p.out, "Lugar más lluvioso: %s con %.2f mm de lluvia.\n", rainiest.Name, rainiest.TotalRain)
	} else {
		fmt.Fprintln(p.out, "Lugar más lluvioso: N/A con N/A mm de lluvia.")
	}

	if hottest != nil {
		fmt.Fprintf(p.out, "Lugar más caluroso: %s con temperatura media de %.2f°C.\n", hottest.Name, hottest.AverageTemperature)
	} else {
		fmt.Fprintln(p.out, "Lugar más caluroso: N/A con temperatura media de N/A°C.")
	}
}
