// Package cmd implements the bulba subcommands.
//
// Every command reads one BULBA source, from a file or "-" for stdin, and
// writes its result to the output stored in the context by [WithOutput]
// (standard output by default). A command given no source of its own uses
// the first global --source, then stdin:
//
//	bulba fmt json -i 4 app.bulba
//	bulba check app.bulba base.bulba
//	bulba get database.pool.max_connections -f app.bulba
//	bulba eval 'len(whitelist) > 1' -f app.bulba
//	bulba browse app.bulba
//
// Failures are returned as [*Error] values carrying structured attributes;
// parse failures wrap the [*lang.Error] with its line and a snippet of the
// offending source line.
package cmd
