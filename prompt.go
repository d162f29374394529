package main

import (
	"fmt"
)

func screeningInstruction() string {
	return `
You are an applicant tracking system that screens resumes against job descriptions.

For every request you receive a resume and a job description. Do two things:
- Score how well the candidate fits the job and explain the score.
- Parse the resume into structured fields.

Return your result as a structured JSON object in this format:

{
  "fit_analysis": {
    "fit_score": number (integer 0 to 100),
    "summary": string (one paragraph on the candidate's suitability),
    "matching_skills": [string] (skills from the job description the candidate has),
    "missing_skills": [string] (skills from the job description the candidate lacks)
  },
  "ats_parsing": {
    "contact_info": { "name": string, "email": string, "phone": string, "location": string },
    "professional_summary": string,
    "work_experience": [
      { "job_title": string, "company": string, "start_date": string (Month YYYY), "end_date": string (Month YYYY or "Present"), "responsibilities": [string] }
    ],
    "education": [
      { "degree": string, "institution": string, "graduation_date": string (YYYY) }
    ],
    "skills": [string] (every skill found in the resume)
  }
}

List work_experience most recent first.
Base all reasoning only on the provided text. Do not invent experience that is not written down.
Return only valid JSON. Do not include explanations, markdown, or text before or after the JSON.
Your response must be a single JSON object.
`
}

func screeningMessage(resumeText, jdText string) string {
	return fmt.Sprintf(`
---
RESUME:
%s
---
JOB DESCRIPTION:
%s
---
`, resumeText, jdText)
}

func jdPrompt(role, level, skills, tone string) string {
	return fmt.Sprintf(`
Write a detailed job description for a %s position at %s level.
Required skills: %s.
Tone: %s.

Include these sections:
- Job Title
- Job Summary
- Responsibilities
- Requirements and Skills
- Company Culture and Perks, written in the requested tone
`, role, level, skills, tone)
}

func inclusivityPrompt(jdText string) string {
	return fmt.Sprintf(`
Act as an inclusive-hiring reviewer. Read the job description below and flag wording that is biased,
exclusionary or likely to discourage applicants from diverse backgrounds.
Give a list of concrete rewrites. If the text is already inclusive, say so.

Job Description:
%s
`, jdText)
}

func policyPrompt(policyText, question string) string {
	return fmt.Sprintf(`
You answer employee questions about company policy. Use only the policy document below.
If the document does not answer the question, say that it does not.

Policy Document:
%s

Question:
%s
`, policyText, question)
}

func onboardingPrompt(guideText, question string) string {
	return fmt.Sprintf(`
You help new hires settle in. Answer the question using the onboarding guide below.
Be friendly and practical.

Onboarding Guide:
%s

New Hire's Question:
%s
`, guideText, question)
}

func interviewPrompt(jdText string) string {
	return fmt.Sprintf(`
Write 10 to 15 interview questions for the job description below.
Cover technical skill, past behaviour and culture fit.

Group them under these headings:
- Technical Questions
- Behavioral Questions
- Situational Questions

Job Description:
%s
`, jdText)
}

func jobFitPrompt(profile, jdText string) string {
	return fmt.Sprintf(`
Assess how compatible the candidate below is with the job description.

Candidate Profile:
%s

Job Description:
%s

Answer in this format:
Compatibility Score: [score]%%
Summary: [why the candidate is or is not a good fit]
`, profile, jdText)
}

func candidateSummaryPrompt(resumeText string) string {
	return fmt.Sprintf(`
Summarize the resume below in one paragraph for a busy hiring manager.
Highlight the candidate's key qualifications, experience and skills.

Resume:
%s
`, resumeText)
}

func offerLetterPrompt(d OfferDetails) string {
	return fmt.Sprintf(`
Act as an HR professional and draft a formal job offer letter from these details:

- Company Name: "InnovateTech Solutions" (placeholder)
- Candidate Name: %s
- Job Title: %s
- Start Date: %s
- Annual Salary: $%s
- Reporting Manager: %s
- Offer Expiration Date: %s

The letter should cover:
1. Congratulations and introduction.
2. Position details: title, start date and manager.
3. Compensation.
4. A short note on benefits such as health insurance, paid time off and a retirement plan.
5. An at-will employment statement where it applies.
6. Next steps and a signature line for acceptance.

Return only the finished letter.
`, d.CandidateName, d.JobTitle, d.StartDate, formatSalary(*d.Salary), d.ManagerName, d.ExpirationDate)
}

func performanceReviewPrompt(points, employeeName, reviewPeriod string) string {
	return fmt.Sprintf(`
Act as an experienced HR manager. Turn the manager's notes below into a structured, constructive performance review.

Employee Name: %s
Review Period: %s

Manager's Notes:
%s

Use these sections:
1. **Overall Summary**
2. **Strengths / Key Accomplishments**
3. **Areas for Development**, framed as growth opportunities with actionable feedback
4. **Goals for Next Period**, one or two
5. **Closing Remarks**

Keep the tone balanced, supportive and professional.
`, employeeName, reviewPeriod, points)
}
