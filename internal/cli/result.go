package cli

import (
	"fmt"
	"io"

	"github.com/dnsvitals/liveness/internal/output"
)

// Row is one input domain's liveness verdict, shaped for table/plain/JSON
// output regardless of whether it came from an apex-only or FQDN check.
type Row struct {
	Domain                  string `json:"domain"`
	RegisterableDomain      string `json:"registerableDomain,omitempty"`
	RegisterableDomainAlive *bool  `json:"registerableDomainAlive,omitempty"`
	Alive                   bool   `json:"alive"`
	Error                   string `json:"error,omitempty"`
}

// Rows is a batch of Row, implementing output.TableFormattable and
// output.PlainFormattable so the generic output.Write dispatch can render it.
type Rows []Row

func (rows Rows) WriteTable(w io.Writer) error {
	table := output.NewWrappingTable(w, 20, 10)
	table.Header([]string{"DOMAIN", "REGISTERABLE", "REG ALIVE", "ALIVE", "ERROR"})
	data := make([][]string, len(rows))
	for i, r := range rows {
		regAlive := ""
		if r.RegisterableDomainAlive != nil {
			regAlive = fmt.Sprintf("%v", *r.RegisterableDomainAlive)
		}
		data[i] = []string{r.Domain, r.RegisterableDomain, regAlive, fmt.Sprintf("%v", r.Alive), r.Error}
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func (rows Rows) WritePlain(w io.Writer) error {
	for _, r := range rows {
		if r.Error != "" {
			if _, err := fmt.Fprintf(w, "%s\terror\t%s\n", r.Domain, r.Error); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\t%v\n", r.Domain, r.Alive); err != nil {
			return err
		}
	}
	return nil
}
