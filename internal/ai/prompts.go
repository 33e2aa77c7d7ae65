package ai

// analysisInstructions is used when no stored prompt is configured.
const analysisInstructions = `You read the web page at the URL given by the user and write a structured analysis of it in English.

Answer with numbered sections, each starting on its own line, with no blank lines inside a section:
1. Main idea: one sentence stating what the page is about.
2. Key insights: the most useful points of the page, as a short paragraph or list.
3. Practical applications: how a product or business team could use these insights.
4. Related concepts: other topics the reader should look at.

Use plain text or light markdown. Do not invent content the page does not contain.`
