package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"Pergola/internal/calc/frame"
	"Pergola/internal/calc/structure"
)

type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse renders v in the requested format.
func FormatResponse(v any, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(v)
	case FormatHuman:
		return formatHuman(v)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatHuman(v any) (string, error) {
	switch r := v.(type) {
	case structure.Result:
		return formatResultHuman(r), nil
	case []structure.TubeInfo:
		return formatTubesHuman(r), nil
	default:
		return formatJSON(v)
	}
}

func formatResultHuman(r structure.Result) string {
	var b strings.Builder
	b.WriteString(r.Notes + "\n\n")

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MEMBER\tCOUNT")
	for _, k := range frame.Kinds {
		if n := r.Counts[k]; n > 0 {
			fmt.Fprintf(tw, "%s\t%d\n", k, n)
		}
	}
	tw.Flush()
	b.WriteString("\n")

	tw = tabwriter.NewWriter(&b, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "CLASS\tSECTION\tPCS\tLENGTH, M\tBARS\t")
	for _, l := range r.Takeoff {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%d\t\n", l.Class, l.Section, l.Count, l.Length, l.StockBars)
	}
	tw.Flush()

	if len(r.Cost.Items) == 0 {
		return b.String()
	}
	b.WriteString("\n")
	tw = tabwriter.NewWriter(&b, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ITEM\tMATERIAL\tLABOR\tTOTAL\t")
	for _, l := range r.Cost.Items {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t\n", l.Name, l.MaterialCost, l.LaborCost, l.Total())
	}
	fmt.Fprintf(tw, "Total, %s\t%.2f\t%.2f\t%.2f\t\n", r.Cost.Currency, r.Cost.MaterialTotal, r.Cost.LaborTotal, r.Cost.TotalCost)
	tw.Flush()
	return b.String()
}

func formatTubesHuman(list []structure.TubeInfo) string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LABEL\tWIDTH, MM\tTHICKNESS, MM\tDEFAULT FOR")
	for _, t := range list {
		fmt.Fprintf(tw, "%s\t%.0f\t%.0f\t%s\n", t.Label, t.Width*1000, t.Thickness*1000, strings.Join(t.DefaultOf, ", "))
	}
	tw.Flush()
	return b.String()
}
