package investortool

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// locationGuideText is returned verbatim by "get_location_search_guide".
const locationGuideText = `
    Location Search Guide:

    There are two different ways to search for investors by location:

    1. COUNTRY OF INVESTMENT (country parameter):
       - Uses country codes like "USA", "UK", "Germany"
       - Shows where the investor makes investments
       - Example: "Find VCs in USA" or "Angel investors in UK"

    2. GLOBAL HQ LOCATION (hq_location parameter):
       - Uses full addresses like "San Francisco, CA" or "New York, NY"
       - Shows where the investor's headquarters is located
       - Example: "Investors headquartered in San Francisco" or "VCs in New York"

    Tips:
    - Use "country" for broad geographic investment areas
    - Use "hq_location" for specific city/state searches
    - You can search for cities, states, or countries in HQ location
    - Country searches are more precise, HQ searches are more flexible
    `

// LocationSearchGuide handles "get_location_search_guide". It is static text
// and never touches the store.
func (s *Service) LocationSearchGuide(ctx context.Context, req *mcp.CallToolRequest, args noArgs) (*mcp.CallToolResult, any, error) {
	const tool = "get_location_search_guide"
	return s.reply(ctx, tool, time.Now(), locationGuideText)
}

// DataGuideURI is the URI of the static data interpretation resource.
const DataGuideURI = "docs://vc_data_guide"

// dataGuideText explains how to interpret the investor fields. Served as the
// docs://vc_data_guide resource.
const dataGuideText = `
    Understanding VC Investor Data:

    Investor Types:
    - Angel network: Individual investors who invest their own money
    - VC (Venture Capital): Professional investment firms
    - PE (Private Equity): Firms that invest in more mature companies
    - CVC (Corporate Venture Capital): Investment arms of large corporations

    Investment Stages:
    - Pre-seed: Very early stage, often just an idea
    - Seed: Early stage with some traction
    - Series A: First significant institutional round
    - Series B: Growth stage with proven business model
    - Series C+: Later stage funding for scaling
    - Growth: Large rounds for established companies

    First Cheque Ranges:
    - Indicate the typical investment size range for each investor
    - Useful for understanding if an investor fits your funding needs

    Investment Thesis:
    - Describes the investor's strategy and focus areas
    - Helps determine if there's a good fit for your startup
    `

// DataGuideResource returns the static data guide resource and its handler.
func DataGuideResource() (*mcp.Resource, mcp.ResourceHandler) {
	res := &mcp.Resource{
		URI:         DataGuideURI,
		Name:        "vc_data_guide",
		Description: "Provides guidance on interpreting VC investor data.",
		MIMEType:    "text/plain",
	}
	handler := func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: DataGuideURI, MIMEType: "text/plain", Text: dataGuideText},
			},
		}, nil
	}
	return res, handler
}

// analyzePromptTemplate wraps investor records in analysis instructions.
const analyzePromptTemplate = `
    Analyze the following VC investor data and provide insights about the investment landscape.
    Consider:
    1. Geographic distribution of investors
    2. Investment stage preferences
    3. Typical investment sizes
    4. Investment thesis patterns
    5. Any notable trends or insights

    Investor data to analyze:
    ---
    %s
    ---

    Provide a structured analysis with key insights and trends.
    `

// AnalyzePrompt returns the "analyze_investor_data" prompt and its handler.
// The prompt takes one argument, investor_data, holding the records to
// analyze.
func AnalyzePrompt() (*mcp.Prompt, mcp.PromptHandler) {
	prompt := &mcp.Prompt{
		Name:        "analyze_investor_data",
		Description: "Analyzes VC investor data and provides insights about the investment landscape. The input should be a string containing multiple investor records.",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "investor_data",
				Description: "Investor records to analyze, as formatted text.",
				Required:    true,
			},
		},
	}
	handler := func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		data := req.Params.Arguments["investor_data"]
		return &mcp.GetPromptResult{
			Messages: []*mcp.PromptMessage{
				{
					Role:    "user",
					Content: &mcp.TextContent{Text: fmt.Sprintf(analyzePromptTemplate, data)},
				},
			},
		}, nil
	}
	return prompt, handler
}
