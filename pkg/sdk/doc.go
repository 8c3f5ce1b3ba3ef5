// Package sdk provides a Go client for the ragscore evaluation API.
//
//	client := sdk.New("http://localhost:8080", sdk.WithAPIKey("secret"))
//	scores, _ := client.Evaluate(ctx, sdk.EvaluateRequest{
//	    Query:   "What is machine learning?",
//	    Context: "Machine learning is a subset of AI...",
//	    Answer:  "Machine learning is a subset of AI.",
//	})
//	fmt.Println(scores["faithfulness"].Score)
package sdk
