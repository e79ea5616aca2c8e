package screener

// systemInstruction is the fixed role prompt shared by every provider
// variant. The scoring rubric below is a shared asset and must not be
// regenerated or varied per call.
const systemInstruction = `You are an expert technical recruiter screening candidate resumes against a job description. Analyze the resume strictly against the job requirements and return ONLY valid JSON matching the requested structure.`

// scoringRubric is the evidence-based scoring contract embedded in every
// screening instruction, identical across providers.
const scoringRubric = `Scoring rubric (apply exactly):
1. Identify the requirements in the job description and classify each as "must-have" or "nice-to-have" based on how the job description phrases it.
2. Produce one skillsAnalysis entry per job requirement (not per resume skill), in the order the requirements appear in the job description.
3. Each skill score is an integer from 0 to 100. The evidence field must be a literal substring quoted from the resume text. If the resume shows no evidence for a requirement, use exactly "No evidence found". If a skill appears only in a skills list without supporting detail in experience or project sections, use exactly "Listed in skills section only" and score it between 30 and 50.
4. Treat common synonyms and abbreviations as equivalent (for example "K8s" and "Kubernetes", "GCP" and "Google Cloud Platform").
5. overallMatchScore is an integer from 0 to 100, with must-have requirements weighted at twice the weight of nice-to-have requirements.
6. recommendation must be exactly one of: "Strong Match", "Potential Match", "Weak Match", "Not a Match".
7. candidateSummary is at most 3 sentences.
8. If the provided content is not recognizable as a resume at all, set candidateName to "Not a Resume", overallMatchScore to 0 and recommendation to "Not a Match".
9. resumeText must contain the full resume text you analyzed, verbatim.`

// resultShape is the JSON-shape fallback contract for backends without
// schema-constrained generation. Field names are the wire contract.
const resultShape = `Return ONLY a JSON object with exactly this structure and no explanatory text:
{
  "candidateName": string,
  "location": string,
  "totalExperience": string (e.g. "7 years"),
  "currentRole": string,
  "email": string (empty if not present),
  "contactNumber": string (empty if not present),
  "resumeText": string (full resume text, verbatim),
  "overallMatchScore": integer 0-100,
  "candidateSummary": string (max 3 sentences),
  "skillsAnalysis": [{"skill": string, "score": integer 0-100, "reasoning": string, "evidence": string}],
  "strengths": string[],
  "weaknesses": string[],
  "recommendation": "Strong Match" | "Potential Match" | "Weak Match" | "Not a Match",
  "suitableRoles": string[],
  "technicalSkills": string[],
  "functionalSkills": string[]
}`
