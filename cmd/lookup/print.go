package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alexivanou/geoweather/internal/session"
)

// writeView prints what a display shows as plain text
func writeView(w io.Writer, view session.View) error {
	if view.Error != nil {
		_, err := fmt.Fprintln(w, view.Error.Message)
		return err
	}
	if view.Panels == nil {
		return nil
	}

	p := view.Panels
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\n%s\n\n", p.Current.Label, p.Current.Date)
	fmt.Fprintf(tw, "%s\t%s\n", p.Current.Temperature, p.Current.Description)
	fmt.Fprintf(tw, "Wind Speed\t%s\n", p.Current.WindSpeed)
	fmt.Fprintf(tw, "Humidity\t%s\n", p.Current.Humidity)
	fmt.Fprintf(tw, "Feels Like\t%s\n", p.Current.FeelsLike)
	fmt.Fprintf(tw, "Pressure\t%s\n", p.Current.Pressure)

	fmt.Fprintln(tw, "\n5-Day Forecast")
	for _, d := range p.Daily {
		fmt.Fprintf(tw, "%s\t%s / %s\t%s\n", d.Date, d.High, d.Low, d.Description)
	}

	fmt.Fprintln(tw, "\n24-Hour Forecast")
	for _, h := range p.Hourly {
		fmt.Fprintf(tw, "%s\t%s\n", h.Time, h.Temperature)
	}

	return tw.Flush()
}
