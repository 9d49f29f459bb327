package middleware

// FlowTokenHeader carries a flow ticket for clients that do not keep cookies
const FlowTokenHeader = "X-Flow-Token"
