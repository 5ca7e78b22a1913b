package services

import (
	"fmt"
	"html/template"
	"os"
	"strings"
)

// Outbound mail copy for the admissions workflow. Bodies are small HTML
// fragments; recipient-controlled values are escaped.

const mailFooter = `<p style="font-size:12px;color:#666;">
This is an automatically generated email. Replies to this message are not monitored.
</p>`

func dashboardURL() string {
	url := strings.TrimSpace(os.Getenv("DASHBOARD_URL"))
	if url == "" {
		url = strings.TrimSpace(os.Getenv("FRONTEND_URL"))
	}
	return strings.TrimRight(url, "/")
}

func esc(s string) string { return template.HTMLEscapeString(s) }

func submissionCandidateMail(name string) (subject, html string) {
	subject = "Admission Submitted – TTI"
	html = fmt.Sprintf(`Dear %s,<br><br>
Thank you for applying to the <b>TTI Foundation</b>.<br>
We are pleased to inform you that your admission application has been <b>successfully submitted</b>.
Our team will review your application, and you will be notified about the next steps via email.<br><br>
Warm regards,<br>
<b>TTI Foundation – Admissions Team</b><br><br>
%s`, esc(name), mailFooter)
	return subject, html
}

func submissionHeadMail(name, course, mobile string) (subject, html string) {
	subject = "New Admission Request"
	html = fmt.Sprintf(`Dear Sir/Madam,<br>
A new admission application has been submitted and requires your review.<br><br>
<b>Applicant Details:</b><br>
Name: %s<br>
Course Applied: %s<br>
<p>call: <a href="tel:%s">%s</a></p>
Please log in to the admin dashboard to review and take the necessary action.<br>
Dashboard: <a href="%s" target="_blank">%s</a><br><br>
Regards,<br>
<b>TTI Foundation – Admission System</b><br>
%s`, esc(name), esc(course), esc(mobile), esc(mobile), dashboardURL(), dashboardURL(), mailFooter)
	return subject, html
}

func headApprovedTeacherMail(teacherNames, candidateName, course string) (subject, html string) {
	subject = "Candidate Approved – Schedule Interview"
	salutation := teacherNames
	if salutation == "" {
		salutation = "Teacher"
	}
	html = fmt.Sprintf(`Dear %s,<br>
We would like to inform you that the following candidate has been <b>approved by the Head</b> and is ready for the interview process.<br><br>
<b>Candidate Details</b><br>
Name: %s<br>
Course: %s<br>
Please log in to the dashboard and schedule the interview at your convenience.<br>
Dashboard: <a href="%s" target="_blank">%s</a><br><br>
Best regards,<br>
<b>TTI Foundation – Admissions Team</b><br>
%s`, esc(salutation), esc(candidateName), esc(course), dashboardURL(), dashboardURL(), mailFooter)
	return subject, html
}

func headRejectedCandidateMail(name string) (subject, html string) {
	subject = "Application Rejected"
	html = fmt.Sprintf(`<p>Dear %s,</p>
<p>Thank you for your interest in the programs offered by <b>TTI Foundation</b>.</p>
<p>After careful review of your application, we regret to inform you that your application has not been approved at this stage.</p>
<p>We appreciate the time and effort you put into submitting your application and encourage you to apply again in the future if you meet the eligibility criteria.</p>
<p>We wish you all the best in your future endeavors.</p>
<br>Warm regards,<br>
<b>TTI Foundation – Admissions Team</b><br><br><hr>
%s`, esc(name), mailFooter)
	return subject, html
}

func interviewScheduledMail(name string, iv InterviewPayload) (subject, html string) {
	subject = "Interview Scheduled – TTI"
	html = fmt.Sprintf(`Dear %s,<br>
We are pleased to inform you that your interview has been scheduled.<br><br>
<b>Interview Details:</b><br>
Date: %s<br>
Time: %s<br>
Platform: %s<br>
Meeting Link: %s<br><br>
Please ensure that you join the interview on time.<br>
We wish you the very best.<br><br>
Sincerely,<br>
<b>TTI Foundation – Admissions Team</b><br>
%s`, esc(name), esc(iv.Date), esc(iv.Time), esc(iv.Platform), esc(iv.Link), mailFooter)
	return subject, html
}

func interviewScheduledSMS(name string, iv InterviewPayload) string {
	return fmt.Sprintf("TTI: %s, your interview is scheduled on %s at %s via %s. Link: %s",
		name, iv.Date, iv.Time, iv.Platform, iv.Link)
}

func finalSelectedMail(name, course string) (subject, html string) {
	subject = "Congratulations – TTI"
	html = fmt.Sprintf(`Dear %s,<br>
Congratulations!<br>
We are delighted to inform you that you have been <b>successfully selected</b> after the interview process for the <b>%s</b> course at <b>TTI Foundation</b>.<br>
Further instructions regarding onboarding will be shared with you shortly.<br>
We look forward to having you with us.<br><br>
Warm regards,<br>
<b>TTI Foundation – Admissions Team</b><br>
%s`, esc(name), esc(course), mailFooter)
	return subject, html
}

func finalRejectedMail(name string) (subject, html string) {
	subject = "Interview Result – TTI"
	html = fmt.Sprintf(`Dear %s,<br>
Thank you for taking the time to apply and attend the interview with <b>TTI Foundation</b>.<br>
After careful consideration, we regret to inform you that you have not been selected at this time.<br>
We truly appreciate your interest and encourage you to apply again in the future.<br>
We wish you all the best in your academic and professional journey.<br><br>
Sincerely,<br>
<b>TTI Foundation – Admissions Team</b><br>
%s`, esc(name), mailFooter)
	return subject, html
}
