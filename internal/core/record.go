package core

// Record is one row of the SSBG dataset: expenditures and recipients for a
// single state, fiscal year, and service category. Records are immutable once
// the table is built.
type Record struct {
	Year            int
	StateName       string
	LineNum         string
	ServiceCategory string

	// Monetary amounts in whole dollars.
	SSBGExpenditures        int64
	TANFTransferFunds       int64
	TotalSSBGExpenditures   int64
	OtherFedStateLocalFunds int64
	TotalExpenditures       int64

	// Recipient counts.
	Children           int64
	Adults59AndYounger int64
	Adults60AndOlder   int64
	AdultsUnknown      int64
	TotalAdults        int64
	TotalRecipients    int64
}

// Metric identifies an aggregatable column of the dataset.
type Metric string

const (
	MetricExpenditures       Metric = "expenditures" // total SSBG expenditures
	MetricRecipients         Metric = "recipients"   // total recipients served
	MetricSSBGOnly           Metric = "ssbg_expenditures"
	MetricTANFTransfer       Metric = "tanf_transfer_funds"
	MetricOtherFunds         Metric = "other_fed_state_and_local_funds"
	MetricTotalExpenditures  Metric = "total_expenditures"
	MetricChildren           Metric = "children"
	MetricAdults59AndYounger Metric = "adults_59_and_younger"
	MetricAdults60AndOlder   Metric = "adults_60_and_older"
	MetricAdultsUnknown      Metric = "adults_unknown"
	MetricTotalAdults        Metric = "total_adults"
)

// ParseMetric maps a user-supplied metric name to a Metric, falling back to
// the given default for unknown values. User input never fails the query path.
func ParseMetric(s string, fallback Metric) Metric {
	switch Metric(s) {
	case MetricExpenditures, MetricRecipients, MetricSSBGOnly, MetricTANFTransfer,
		MetricOtherFunds, MetricTotalExpenditures, MetricChildren,
		MetricAdults59AndYounger, MetricAdults60AndOlder, MetricAdultsUnknown,
		MetricTotalAdults:
		return Metric(s)
	}
	return fallback
}

// Value extracts the metric's column from a record.
func (m Metric) Value(r Record) int64 {
	switch m {
	case MetricExpenditures:
		return r.TotalSSBGExpenditures
	case MetricRecipients:
		return r.TotalRecipients
	case MetricSSBGOnly:
		return r.SSBGExpenditures
	case MetricTANFTransfer:
		return r.TANFTransferFunds
	case MetricOtherFunds:
		return r.OtherFedStateLocalFunds
	case MetricTotalExpenditures:
		return r.TotalExpenditures
	case MetricChildren:
		return r.Children
	case MetricAdults59AndYounger:
		return r.Adults59AndYounger
	case MetricAdults60AndOlder:
		return r.Adults60AndOlder
	case MetricAdultsUnknown:
		return r.AdultsUnknown
	case MetricTotalAdults:
		return r.TotalAdults
	}
	return 0
}

// Monetary reports whether the metric is a dollar amount (as opposed to a
// recipient count), which controls display formatting.
func (m Metric) Monetary() bool {
	switch m {
	case MetricExpenditures, MetricSSBGOnly, MetricTANFTransfer,
		MetricOtherFunds, MetricTotalExpenditures:
		return true
	}
	return false
}

// DisplayName returns the human-readable column label used in tables and
// CSV exports.
func (m Metric) DisplayName() string {
	switch m {
	case MetricExpenditures:
		return "Total SSBG Expenditures"
	case MetricRecipients:
		return "Total Recipients Served"
	case MetricSSBGOnly:
		return "SSBG Expenditures"
	case MetricTANFTransfer:
		return "TANF Transfer Funds"
	case MetricOtherFunds:
		return "All Other Federal/State/Local Funds"
	case MetricTotalExpenditures:
		return "Total Expenditures"
	case MetricChildren:
		return "Children Served"
	case MetricAdults59AndYounger:
		return "Adults 59 and Younger Served"
	case MetricAdults60AndOlder:
		return "Adults 60 and Older Served"
	case MetricAdultsUnknown:
		return "Adults Unknown Age Served"
	case MetricTotalAdults:
		return "Total Adults Served"
	}
	return string(m)
}
