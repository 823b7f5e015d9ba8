// Package investortool provides the MCP tools for querying the hosted
// venture-capital investor table. Ten tools are exported via [Tools]:
//
//   - "get_investor_data"           : list investor records.
//   - "search_investors_by_criteria": filter by type, stage, country, or HQ.
//   - "get_available_investor_types": distinct investor types.
//   - "get_available_countries"     : distinct investment countries.
//   - "analyze_investment_stages"   : stage distribution with percentages.
//   - "find_investors_by_cheque_size": filter by first-cheque bounds.
//   - "analyze_investment_thesis"   : thesis keyword themes.
//   - "get_investor_statistics"     : database-wide statistics.
//   - "find_similar_investors"      : rank investors similar to a named one.
//   - "get_location_search_guide"   : static location search guidance.
//
// Every tool returns a bounded, human-readable text report. Errors never
// escape a tool boundary: configuration and execution failures alike are
// converted to a single descriptive line identifying the failed operation.
// All handlers are safe for concurrent use.
package investortool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/iamfaham/investor-data-mcp/internal/tools"
)

// tool builds one registry entry. The Register closure is where the SDK
// derives the parameter schema from the handler's argument struct.
func tool[In any](name, description string, handler mcp.ToolHandlerFor[In, any]) tools.Tool {
	return tools.Tool{
		Name:        name,
		Description: description,
		Register: func(s *mcp.Server) {
			mcp.AddTool(s, &mcp.Tool{Name: name, Description: description}, handler)
		},
	}
}

// Tools returns the investor tool set backed by svc, ready for registration
// with the MCP server.
func Tools(svc *Service) []tools.Tool {
	return []tools.Tool{
		tool("get_investor_data",
			"Fetches investor data from the OpenVC database. Use this tool when a user asks for investor information, VC data, or startup funding data. Returns investor name, website, HQ, countries, stage, thesis, type, and first cheque range.",
			svc.GetInvestorData),
		tool("search_investors_by_criteria",
			"Search for investors based on specific criteria. Use this tool when a user wants to find investors by type, investment stage, country, or HQ location.",
			svc.SearchInvestors),
		tool("get_available_investor_types",
			"Get a list of all available investor types in the database. Use this tool when a user wants to know what investor types are available for searching.",
			svc.GetInvestorTypes),
		tool("get_available_countries",
			"Get a list of all available countries in the database. Use this tool when a user wants to know what countries are available for searching.",
			svc.GetCountries),
		tool("analyze_investment_stages",
			"Analyze the distribution of investment stages across all investors. Use this tool when a user wants to understand what investment stages are most common or get insights about the investment landscape.",
			svc.AnalyzeStages),
		tool("find_investors_by_cheque_size",
			"Find investors based on their typical investment size (first cheque range). Use this tool when a user wants to find investors that invest within a specific amount range. Amounts are magnitude strings like \"100k\", \"1M\", \"10M\".",
			svc.FindByChequeSize),
		tool("analyze_investment_thesis",
			"Analyze investment thesis patterns across all investors. Use this tool when a user wants to understand common investment themes, focus areas, or strategies.",
			svc.AnalyzeThesis),
		tool("get_investor_statistics",
			"Get comprehensive statistics about the investor database. Use this tool when a user wants to understand the overall composition and distribution of investors.",
			svc.GetStatistics),
		tool("find_similar_investors",
			"Find investors similar to a given investor based on type, stage, and location. Use this tool when a user wants to find investors similar to a specific one.",
			svc.FindSimilar),
		tool("get_location_search_guide",
			"Provides guidance on how to search for investors by location. Use this tool when a user wants to understand the difference between country and HQ location searches.",
			svc.LocationSearchGuide),
	}
}
