package tarkovdev

import (
	"reflect"
	"strings"
	"testing"
)

const hideoutPage = `
<div class="mw-parser-output">
  <ul><li>Skin found in raid: <a href="/wiki/Skin">Skin</a></li></ul>
  <div class="wds-tabber dealer-tabber">
    <ul>
      <li>1 <a href="/wiki/Gas_analyzer">Gas analyzer</a> (<a href="/wiki/Found_in_raid">Found in raid</a>)</li>
      <li><a href="/wiki/Found_in_raid">Found In Raid</a> <a href="/wiki/T-Shaped_Plug">T-Shaped Plug</a></li>
      <li>5 <a href="/wiki/Bolts">Bolts</a></li>
    </ul>
  </div>
  <table>
    <tr><th colspan="4">Stash</th></tr>
    <tr><th>1</th><td><ul><li>Owning standard game edition</li></ul></td></tr>
    <tr><th>2</th><td><ul><li>Owning &quot;Left Behind&quot; game edition</li></ul></td></tr>
    <tr><th>4</th><td><ul><li>Owning &quot;Edge of Darkness&quot; game edition</li><li>Owning &quot;Unheard&quot; game edition</li></ul></td></tr>
  </table>
  <table>
    <tr><th colspan="4">Cultist Circle</th></tr>
    <tr><th>1</th><td>Owning &quot;Unheard&quot; game edition</td></tr>
  </table>
</div>`

func TestParseHideoutWiki(t *testing.T) {
	got, err := ParseHideoutWiki(strings.NewReader(hideoutPage))
	if err != nil {
		t.Fatalf("ParseHideoutWiki() error = %v", err)
	}

	wantFIR := map[string]string{"gasanalyzer": "Gas analyzer", "tshapedplug": "T-Shaped Plug"}
	if !reflect.DeepEqual(got.FIRItems, wantFIR) {
		t.Errorf("FIRItems = %v, want %v", got.FIRItems, wantFIR)
	}

	wantStash := map[string]int{"Standard": 1, "Left Behind": 2, "Edge of Darkness": 4, "Unheard": 4}
	if !reflect.DeepEqual(got.StashEditionLevels, wantStash) {
		t.Errorf("StashEditionLevels = %v, want %v", got.StashEditionLevels, wantStash)
	}

	if !reflect.DeepEqual(got.CultistCircleEditions, []string{"Unheard"}) {
		t.Errorf("CultistCircleEditions = %v", got.CultistCircleEditions)
	}

	if keys := got.FIRKeys(); !keys["gasanalyzer"] || len(keys) != 2 {
		t.Errorf("FIRKeys() = %v", keys)
	}
}
