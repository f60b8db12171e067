// Package discovery advertises a networked SCPI instrument over mDNS.
//
// LXI-style instruments announce their raw-socket endpoint as the
// "_scpi-raw._tcp" service type so bench software can find them
// without configuration. TXT records carry the identity fields the
// instrument also reports via *IDN?.
package discovery
