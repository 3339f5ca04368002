// decomisos analiza un reporte de resumen de despacho (.xlsx) descargado de INFOCGAN e
// imprime los decomisos extraídos en JSON.
//
// Uso: go run ./cmd/decomisos [-pdf salida.pdf] ruta/resumen_despacho.xlsx
// Con -pdf además genera el resumen de decomisos en PDF.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeronimo114/comcer2/internal/infrastructure/excel"
	infrapdf "github.com/jeronimo114/comcer2/internal/infrastructure/pdf"
	"github.com/jeronimo114/comcer2/pkg/logger"
)

func main() {
	pdfOut := flag.String("pdf", "", "ruta del PDF de resumen (opcional)")
	level := flag.String("log", "warn", "nivel de log")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Uso: decomisos [-pdf salida.pdf] archivo.xlsx")
		os.Exit(2)
	}
	path := flag.Arg(0)

	log := logger.New(logger.Config{Env: "development", Level: *level, Out: os.Stderr})

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer archivo: %v\n", err)
		os.Exit(1)
	}

	d, err := excel.NewDecomisosParser(log.Component("excel")).Parse(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analizar Excel: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir JSON: %v\n", err)
		os.Exit(1)
	}

	if *pdfOut != "" {
		batch := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		doc, err := infrapdf.NewDecomisosReport().RenderDecomisos(batch, d)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Generar PDF: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*pdfOut, doc, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Escribir PDF: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Generado: %s (%d cantidades, %d motivos)\n", *pdfOut, len(d.Cantidades), len(d.Motivos))
	}
}
