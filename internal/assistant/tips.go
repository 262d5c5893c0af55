package assistant

var stepTips = map[int]string{
	1: "Choose a position that matches your skills and career goals. Consider the job market demand and your long-term aspirations.",
	2: "Ensure your contact information is professional. Use a portfolio/GitHub to showcase your work and include relevant links.",
	3: "Write a compelling summary that highlights your unique value proposition and key achievements. Keep it concise and targeted.",
	4: "Include both technical and soft skills. Prioritize skills mentioned in your target job descriptions.",
	5: "Use action verbs and quantify achievements. Show impact with numbers and specific results.",
	6: "Highlight relevant coursework, projects, and academic achievements that support your career goals.",
	7: "Showcase projects that demonstrate your skills for the target position with live links when possible.",
}

// StepTip returns the guidance for a wizard step, or "" for an unknown step.
func StepTip(step int) string {
	return stepTips[step]
}
