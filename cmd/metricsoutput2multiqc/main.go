// metricsoutput2multiqc flattens a TSO500 MetricsOutput.tsv into one DNA and
// one RNA table that MultiQC can load as custom content. The tables are
// written to the current directory as MetricsOutput_MultiQC_DNA.tsv and
// MetricsOutput_MultiQC_RNA.tsv; a table with no samples is not written.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/tso500qc"
	_ "github.com/carbocation/tso500qc/compileinfoprint"
	"github.com/carbocation/tso500qc/metricsoutput"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s path/to/MetricsOutput.tsv\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "The input may be a local path or a google storage URL (gs://), optionally compressed.")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(context.Background(), flag.Arg(0), "."); err != nil {
		log.Fatalln(pfx.Err(err))
	}
}

func run(ctx context.Context, input, outDir string) error {
	var client *storage.Client
	if tso500qc.IsGoogleStoragePath(input) {
		var err error
		client, err = storage.NewClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close()
	}

	log.Println("Reading", input)
	report, err := tso500qc.ReadReport(ctx, input, client)
	if err != nil {
		return err
	}

	if delim := tso500qc.DetermineDelimiter(bytes.NewReader(report), '\t'); delim != '\t' {
		log.Printf("Warning: %s looks %q-delimited rather than tab-delimited\n", input, delim)
	}

	result, err := metricsoutput.Process(bytes.NewReader(report), metricsoutput.Options{})
	if err != nil {
		return err
	}

	summary, err := metricsoutput.SummarizeContamination(result.Assessments)
	if err != nil {
		return err
	}

	log.Printf("Found %d samples (%d DNA, %d RNA)\n", result.Table.Len(), result.DNA.Len(), result.RNA.Len())
	log.Printf("Contamination assessed for %d samples; median score %.1f, max score %.1f\n", summary.Assessed, summary.MedianScore, summary.MaxScore)
	if len(summary.Flagged) > 0 {
		log.Printf("Samples flagged as contaminated: %v\n", summary.Flagged)
	}

	written, err := metricsoutput.WriteOutputs(outDir, result.DNA, result.RNA)
	if err != nil {
		return err
	}

	for _, path := range written {
		log.Println("Wrote", path)
	}

	return nil
}
