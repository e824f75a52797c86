package rag

// Prompt templates are pure data: two %s slots, filled with the context
// block and the question. Each carries a response-length factor applied
// to the configured ceiling; diagrams get double the room since mermaid
// output runs long.
type promptTemplate struct {
	name        string
	text        string
	tokenFactor int
}

var defaultTemplate = &promptTemplate{
	name: "default",
	text: "You are an Odoo expert assistant that helps developers understand Odoo code and modules.\n" +
		"Use the following pieces of context to answer the question at the end.\n" +
		"If you don't know the answer, just say you don't know. Don't try to make up an answer.\n" +
		"Keep your answers technical and focused on Odoo development.\n\n" +
		"Context:\n%s\n\nQuestion: %s\n\nAnswer:",
	tokenFactor: 1,
}

var modelTemplate = &promptTemplate{
	name: "model",
	text: "You are an Odoo expert assistant that helps developers understand Odoo models and fields.\n" +
		"Use the following pieces of context about Odoo models to answer the question at the end.\n" +
		"Explain Odoo ORM concepts clearly and provide examples when relevant.\n\n" +
		"Context:\n%s\n\nQuestion: %s\n\nAnswer:",
	tokenFactor: 1,
}

var viewTemplate = &promptTemplate{
	name: "view",
	text: "You are an Odoo expert assistant that helps developers understand Odoo views and UI.\n" +
		"Use the following pieces of context about Odoo views to answer the question at the end.\n" +
		"Explain view inheritance and XML structure clearly when relevant.\n\n" +
		"Context:\n%s\n\nQuestion: %s\n\nAnswer:",
	tokenFactor: 1,
}

var diagramTemplate = &promptTemplate{
	name: "diagram",
	text: "You are an Odoo expert assistant that visualizes business processes.\n" +
		"Use the following pieces of context about Odoo code to produce a mermaid sequence diagram\n" +
		"of the requested process. Show the models, methods and user interactions involved, in order.\n" +
		"Output the diagram in a mermaid code block, followed by a short explanation of each step.\n\n" +
		"Context:\n%s\n\nProcess: %s\n\nDiagram:",
	tokenFactor: 2,
}

var moduleListTemplate = &promptTemplate{
	name: "modules",
	text: "You are an Odoo expert assistant.\n" +
		"The following context contains module manifests from an indexed Odoo code base.\n" +
		"List every distinct module, one per line, as 'technical_name - display name (version)'.\n" +
		"Deduplicate and sort alphabetically. Do not invent modules that are not in the context.\n\n" +
		"Context:\n%s\n\nQuestion: %s\n\nModules:",
	tokenFactor: 1,
}

// route pairs a keyword predicate with its template. Routing scans the
// table top to bottom and the first category with any keyword present in
// the lowercased question wins, so a question mixing diagram and model
// keywords always resolves to diagram intent.
type route struct {
	keywords []string
	tmpl     *promptTemplate
}

var routes = []route{
	{[]string{"sequence diagram", "diagram", "workflow", "flowchart"}, diagramTemplate},
	{[]string{"list all modules", "all modules", "list modules", "available modules", "which modules", "what modules"}, moduleListTemplate},
	{[]string{"model", "field", "orm", "inheritance", "method", "record", "database"}, modelTemplate},
	{[]string{"view", "form", "tree", "kanban", "xml", "qweb", "ui", "button", "action"}, viewTemplate},
}
