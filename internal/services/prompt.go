package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildParsePrompt creates the prompt for structured resume extraction.
func (pb *PromptBuilder) BuildParsePrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert resume parser. Extract information from resumes accurately and structure it cleanly.

Parse this resume and extract the information:

RESUME TEXT:
%s

Return your response as a single JSON object with this schema:
{
  "full_name": "<full name of the candidate>",
  "email": "<email address or null>",
  "phone": "<phone number or null>",
  "location": "<city, state/country or null>",
  "external_links": {
    "linkedin": "<url or null>",
    "github": "<url or null>",
    "portfolio": "<url or null>",
    "other": ["<other relevant links, labelled>"]
  },
  "work_experience": [
    {"company": "...", "position": "...", "duration": "...", "description": "<short, to the point, no corporate jargon>"}
  ],
  "education": [
    {"institution": "...", "degree": "...", "field_of_study": "...", "marks": "...", "graduation_year": "..."}
  ],
  "projects": [
    {"name": "...", "description": "<very short summary>", "skills": ["tech stack used"], "url": "<url or null>"}
  ],
  "certifications": [
    {"name": "...", "issuer": "...", "date": "..."}
  ],
  "extracurricular_activities": [
    {"name": "...", "role": "...", "duration": "...", "description": "..."}
  ],
  "awards_honors": [
    {"title": "...", "issuer": "...", "description": "..."}
  ],
  "skills": ["every skill, language, tech stack or service mentioned by the candidate, plus any that can be inferred from projects, publications or certifications"],
  "publications": ["list of publications"]
}

Omit null fields and empty lists. Return ONLY the JSON object, no commentary.`, resumeText)
}

// BuildScreeningPrompt creates the prompt for scoring a parsed resume against
// a job opening. Weights arrive already validated and normalized.
func (pb *PromptBuilder) BuildScreeningPrompt(parsedResume, jobTitle, jobDescription string, weights map[string]float64) string {
	return fmt.Sprintf(`You are an expert technical recruiter and resume screener with deep knowledge across multiple industries.
Your job is to evaluate how well a candidate's resume matches a job opening.
Be critical in your evaluation and fair in your rating. Don't hesitate to lower scores if the candidate does not meet expectations.
In fact lower scores are more common than high scores.

EVALUATION GUIDELINES:
1. Be objective and fair in your assessment
2. Consider both technical skills and soft skills but prioritize technical fit
3. Look for relevant experience, not just years
4. Value projects and certifications that demonstrate practical skills; value unique projects over generic ones
5. Consider transferable skills from different domains
6. Be realistic about skill gaps - focus on critical vs. nice-to-have
7. Use the full 0-10 scale (don't cluster around 7-8)
8. Provide actionable, specific feedback
9. If the candidate lacks the required skills or experience for the job, the overall rating should be low even if other fields are strong

SCORING SCALE:
9-10: Exceptional match, rare to find better
7-8: Strong match, highly qualified
5-6: Good match, qualified with some gaps
3-4: Potential match, significant gaps but trainable
0-2: Poor match, major misalignment

Evaluate this candidate's resume for the following position:

JOB TITLE: %s

JOB DESCRIPTION:
%s

CANDIDATE RESUME (structured):
%s

SCORING WEIGHTS:
%s

Return your response as a single JSON object with this schema:
{
  "skill_match": {"score": <0-10>, "matched_skills": [...], "missing_skills": [...], "additional_skills": [...], "reasoning": "..."},
  "experience_match": {"score": <0-10>, "meets_requirements": <bool>, "relevant_experience": [...], "years_of_experience": "...", "seniority_match": "<under-qualified/appropriate/over-qualified>", "reasoning": "..."},
  "education_match": {"score": <0-10>, "meets_requirements": <bool>, "relevant_degrees": [...], "reasoning": "..."},
  "project_match": {"score": <0-10>, "relevant_projects": [...], "key_technologies": [...], "reasoning": "..."},
  "cultural_fit": {"score": <0-10>, "indicators": [...], "reasoning": "..."},
  "overall_score": <weighted average of the category scores using the weights above, 0-10>,
  "recommendation": "<'Strong Match', 'Good Match', 'Potential Match', 'Weak Match', or 'Not a Match'>",
  "summary": "<2-3 sentence executive summary of the candidate's fit>",
  "strengths": ["top 3-5 strengths for this role"],
  "concerns": ["top 3-5 concerns or gaps for this role"]
}

Be specific in your reasoning and provide actionable insights. Return ONLY the JSON object.`,
		jobTitle, jobDescription, parsedResume, formatWeights(weights))
}

func formatWeights(weights map[string]float64) string {
	var lines []string
	for _, category := range WeightCategories {
		lines = append(lines, fmt.Sprintf("- %s: %.0f%%", category, weights[category]*100))
	}
	return strings.Join(lines, "\n")
}
