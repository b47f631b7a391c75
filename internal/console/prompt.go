// Package console reads the location choice from an interactive terminal.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/i474232898/galicia-weather-report/internal/common"
	"github.com/i474232898/galicia-weather-report/internal/weather"
)

const (
	promptManual    = "¿Quieres introducir coordenadas manualmente? (s/n): "
	promptLatitude  = "Introduce la latitud: "
	promptLongitude = "Introduce la longitud: "
)

// Prompter asks questions on out and reads single-line answers from in.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a Prompter.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// readLine returns the next line, or "" and false on EOF.
func (p *Prompter) readLine() (string, bool) {
	if !p.in.Scan() {
		return "", false
	}
	return p.in.Text(), true
}

// PromptUseManualCoordinates returns true only for the answer "s".
func (p *Prompter) PromptUseManualCoordinates() bool {
	fmt.Fprint(p.out, promptManual)
	line, _ := p.readLine()
	return common.NormalizeAnswer(line) == "s"
}

// CollectManualLocation reads latitude and longitude. If either does not parse
// as a float it prints a warning and returns weather.DefaultLocation.
func (p *Prompter) CollectManualLocation() weather.Location {
	fmt.Fprint(p.out, promptLatitude)
	latLine, _ := p.readLine()
	lat, latErr := parseCoordinate(latLine)

	fmt.Fprint(p.out, promptLongitude)
	lonLine, _ := p.readLine()
	lon, lonErr := parseCoordinate(lonLine)

	if latErr != nil || lonErr != nil {
		fallback := weather.DefaultLocation()
		fmt.Fprintf(p.out, "Coordenadas inválidas. Se usará %s.\n", fallback.Name)
		return fallback
	}
	return weather.CustomLocation(lat, lon)
}

// ChooseMode asks whether to enter coordinates manually.
func (p *Prompter) ChooseMode() weather.LocationMode {
	if p.PromptUseManualCoordinates() {
		return weather.LocationModeManual
	}
	return weather.LocationModeFixed
}

// Locations runs the whole interactive selection and returns the working set.
func (p *Prompter) Locations() []weather.Location {
	mode := p.ChooseMode()
	var manual weather.Location
	if mode == weather.LocationModeManual {
		manual = p.CollectManualLocation()
	}
	return weather.SelectLocations(mode, manual)
}

func parseCoordinate(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
