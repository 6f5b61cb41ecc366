package mail

import (
	"fmt"
	"time"
)

// timestampLayout renders completion times for human readers,
// e.g. "February 13, 2026 at 09:30 AM UTC".
const timestampLayout = "January 2, 2006 at 03:04 PM MST"

func completionText(submissionID int64, documentURL string, completedAt time.Time) string {
	download := ""
	if documentURL != "" {
		download = fmt.Sprintf("\nDownload: %s\n", documentURL)
	}

	return fmt.Sprintf(`Document Signing Completed - Better Day Energy

Great news! Your document has been successfully signed and completed.

Document Details:
- Submission ID: %d
- Completed At: %s
- Status: Completed
%s
Next Steps: Your signed document is now complete. A copy has been securely
stored and our team will process your request shortly.

This email was sent by Better Day Energy's automated document system.
If you have questions, please contact our support team.
`, submissionID, completedAt.Format(timestampLayout), download)
}

func completionHTML(submissionID int64, documentURL string, completedAt time.Time) string {
	download := ""
	if documentURL != "" {
		download = fmt.Sprintf(`<p style="text-align: center; margin: 30px 0;">
  <a href="%s" style="background: #007bff; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; font-weight: bold;">Download Signed Document</a>
</p>`, documentURL)
	}

	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="font-size: 24px;">Document Signing Completed</h1>
    <p>Great news! Your document has been successfully signed and completed.</p>
    <div style="background: #f8f9fa; padding: 20px; border-radius: 8px; border-left: 4px solid #28a745;">
      <p style="margin: 5px 0;"><strong>Submission ID:</strong> %d</p>
      <p style="margin: 5px 0;"><strong>Completed At:</strong> %s</p>
      <p style="margin: 5px 0;"><strong>Status:</strong> <span style="color: #28a745; font-weight: bold;">Completed</span></p>
    </div>
    %s
    <p><strong>Next Steps:</strong> Your signed document is now complete. A copy has
    been securely stored and our team will process your request shortly.</p>
    <hr style="border: none; border-top: 1px solid #dee2e6;">
    <p style="font-size: 12px; color: #6c757d; text-align: center;">
      This email was sent by Better Day Energy's automated document system.<br>
      If you have questions, please contact our support team.
    </p>
  </div>
</body>
</html>`, submissionID, completedAt.Format(timestampLayout), download)
}

func reminderText(submissionID int64, signingURL string, daysPending int) string {
	return fmt.Sprintf(`Document Signing Reminder - Better Day Energy

Action Required: You have a document waiting for your signature.
This document has been pending for %d days.

Document Details:
- Submission ID: %d
- Days Pending: %d
- Status: Waiting for Signature

Sign Document: %s

Important: Please complete the signing process to avoid delays in
processing your request.

This reminder was sent by Better Day Energy's automated document system.
If you have questions, please contact our support team.
`, daysPending, submissionID, daysPending, signingURL)
}

func reminderHTML(submissionID int64, signingURL string, daysPending int) string {
	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="font-size: 24px;">Document Signing Reminder</h1>
    <p>You have a document waiting for your signature. This document has been
    pending for <strong>%d days</strong>.</p>
    <div style="background: #f8f9fa; padding: 20px; border-radius: 8px; border-left: 4px solid #ffc107;">
      <p style="margin: 5px 0;"><strong>Submission ID:</strong> %d</p>
      <p style="margin: 5px 0;"><strong>Days Pending:</strong> %d</p>
      <p style="margin: 5px 0;"><strong>Status:</strong> <span style="color: #ffc107; font-weight: bold;">Waiting for Signature</span></p>
    </div>
    <p style="text-align: center; margin: 30px 0;">
      <a href="%s" style="background: #28a745; color: white; padding: 15px 30px; text-decoration: none; border-radius: 6px; font-weight: bold;">Sign Document Now</a>
    </p>
    <p><strong>Important:</strong> Please complete the signing process to avoid
    delays in processing your request.</p>
    <hr style="border: none; border-top: 1px solid #dee2e6;">
    <p style="font-size: 12px; color: #6c757d; text-align: center;">
      This reminder was sent by Better Day Energy's automated document system.<br>
      If you have questions, please contact our support team.
    </p>
  </div>
</body>
</html>`, daysPending, submissionID, daysPending, signingURL)
}
