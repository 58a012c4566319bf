// Package goods matches industrial supply with commercial demand over roads.
//
// Industrial tiles produce 12×level goods, commercial tiles demand 8×level
// (each scaled and rounded). Consumers are served nearest first: a consumer
// takes what it can from the producer that owns its road tile in the
// producer flow field, then from the next-nearest producers that still have
// stock, and finally imports the rest from the map edge when allowed.
// Leftover demand is reported as UnreachableDemand. Surplus supply is
// exported to the map edge when allowed.
//
// Every shipped unit increments RoadGoodsTraffic on each tile of its route.
// A Debug collector, when supplied, aggregates shipments into one ODEdge per
// (type, source road, destination road).
package goods
