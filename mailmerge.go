/*
Package mailmerge provides a batch mailer that turns a spreadsheet of
contacts into personalized HTML emails.

Mailmerge reads an .xlsx contact list, builds a formal German salutation
for each row (Herr/Frau/Titel), renders an HTML or markdown template with
the row's fields, splices in an optional signature fragment, and hands the
finished message to a mail transport. Rows are processed strictly one at a
time with a configurable pause between sends.

# Configuration

Mailmerge reads an optional YAML configuration file (.mailmerge.yaml);
every setting can also be supplied as a command-line flag, and flags win.
The configuration supports include statements for sharing SMTP settings
between campaigns.

# Usage

Basic usage:

	mailmerge send -x contacts.xlsx -s "Invitation"   # send to every row
	mailmerge send --dry-run                          # preview, no sends
	mailmerge send --display                          # write .eml files for review
	mailmerge preview                                 # same as send --dry-run
	mailmerge check                                   # validate inputs only
	mailmerge init                                    # scaffold config + template

For more information, see the documentation at https://github.com/oarkflow/mailmerge
*/
package mailmerge

// Version is the current version of Mailmerge
const Version = "1.0.0"

// BuildDate is set at build time
var BuildDate string

// GitCommit is set at build time
var GitCommit string
