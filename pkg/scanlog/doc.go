// Package scanlog flags anomalous lines in a corpus of log text.
//
// A line is anomalous when an isolation forest fitted on TF-IDF vectors of
// the whole corpus marks it as an outlier, or when it contains one of the
// configured keywords (case-insensitive). Results are reproducible for a
// given seed.
//
// Quick start:
//
//	s, err := scanlog.New(scanlog.WithContamination("0.05"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := s.Scan(ctx, "./logs")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, e := range res.Anomalies {
//	    fmt.Println(e.Path, e.Seq, e.Text)
//	}
//
// A Scanner is safe for concurrent use; calls are serialized because the
// detector is refitted on every corpus.
package scanlog
