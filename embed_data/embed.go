package embed_data

import (
	_ "embed"
)

//go:embed prompts/selection_prompt.md
var SelectionPrompt []byte

//go:embed prompts/analysis_prompt.md
var AnalysisPrompt []byte

//go:embed prompts/reimplementation_prompt.md
var ReimplementationPrompt []byte

//go:embed queries/go_query.json
var GoQuery []byte

//go:embed queries/csharp_query.json
var CSharpQuery []byte

//go:embed queries/python_query.json
var PythonQuery []byte

//go:embed queries/java_query.json
var JavaQuery []byte

//go:embed queries/javascript_query.json
var JavascriptQuery []byte

//go:embed queries/typescript_query.json
var TypescriptQuery []byte
