package format

const markdownInstructions = `Format your response as a Markdown document with:
1. A clear title (use # for the main title)
2. Section headers (use ## for major sections and ### for subsections)
3. Bullet points or numbered lists where appropriate
4. Bold or italics for emphasis
5. Code blocks if needed
6. Citations to the source material

IMPORTANT: Do NOT wrap the entire response in markdown code blocks (` + "```" + `).
Write the content directly in markdown format.`

const pdfInstructions = `Format your response as a clean document suitable for PDF conversion with:
1. A clear title at the top (no special formatting needed)
2. Section headers should be plain text, not markdown formatting
3. Concise paragraphs with clear spacing between them
4. Use plain bullet points (•) for lists
5. Use numbers (1., 2., etc.) for numbered lists
6. Do not use markdown formatting like **, __, or ##
7. Citations should be numbered [1], [2], etc.
8. Include a "References" section at the end with numbered sources

Example format:

Understanding Machine Learning

Introduction
Machine learning is a branch of artificial intelligence...

Key Concepts
• Supervised Learning: Training with labeled data...
• Unsupervised Learning: Finding patterns in unlabeled data...

Applications
1. Healthcare: Diagnosis and treatment planning [1]
2. Finance: Fraud detection and risk assessment [2]

References
[1] Source Title 1 - URL
[2] Source Title 2 - URL`

const pptInstructions = `Format your response as an engaging slide presentation with:

1. Title Slide:
--- Slide: Title ---
Title: [Main Title]
Subtitle: [Brief Description]
Theme: [tech/business/science/education]

2. Agenda/Overview Slide:
--- Slide: Overview ---
• [Key Point 1]
• [Key Point 2]
• [Key Point 3]

3. Content Slides (3-5 points per slide):
--- Slide: [Section Title] ---
• [Main Point]
• [Supporting Point]
• [Example/Application]
Image Suggestion: [Brief description of relevant image]
Color Theme: [suggested color - blue/green/orange/etc.]

4. Conclusion Slide:
--- Slide: Key Takeaways ---
• [Main Takeaway 1]
• [Main Takeaway 2]
• [Call to Action/Next Steps]

For each slide, include:
Notes: [Detailed speaking notes for presenter]
Layout: [simple/two-column/comparison/image-focus]
Emphasis: [key terms to highlight]

Example:
--- Slide: Introduction to Deep Learning ---
Title: What is Deep Learning?
Layout: image-focus
• Neural networks inspired by human brain
• Subset of machine learning
• Powers modern AI applications
Image Suggestion: Neural network diagram with glowing connections
Color Theme: deep blue and white
Emphasis: "neural networks", "machine learning"
Notes: Deep learning is a revolutionary approach to artificial intelligence...`

const genericInstructions = "Format your response as a clear, well-structured document that directly answers the query."

// Instructions returns the prompt block describing the expected layout for f.
func (f Format) Instructions() string {
	switch f {
	case Markdown:
		return markdownInstructions
	case PDF:
		return pdfInstructions
	case PPT:
		return pptInstructions
	default:
		return genericInstructions
	}
}
