package services

import (
	"fmt"
	"time"
)

const reportTemplate = `Suspected Scam Report
Date: %s
Reporter: %s
Contact: %s

Summary of Incident:
%s

Requested Action:
Please acknowledge receipt and advise on next steps. I consent to share this report with relevant authorities.`

// GenerateReport renders a ready-to-send incident report dated today.
func GenerateReport(reporter, contact, summary string) string {
	return GenerateReportAt(time.Now(), reporter, contact, summary)
}

// GenerateReportAt renders the report with an explicit date, which
// keeps the output reproducible.
func GenerateReportAt(now time.Time, reporter, contact, summary string) string {
	return fmt.Sprintf(reportTemplate, now.Format("2006-01-02"), reporter, contact, summary)
}
