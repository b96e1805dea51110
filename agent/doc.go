// Package agent provides the five reasoning variants that fill the fixed
// pipeline roles: discovery, knowledge, valuation, financing and document.
//
// Every agent is dual-mode. The structured payload always comes from local
// deterministic data (stores, lender tables, market factor rules); a
// configured language model only rewrites the summary narrative. With a
// model the result is Success, without one (or when the model call fails)
// the agent degrades to its heuristic summary instead of failing the step.
package agent
