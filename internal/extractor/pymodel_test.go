package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const saleOrderSource = `from odoo import api, fields, models


class SaleOrderExt(models.Model):
    _name = 'sale.order.ext'
    _inherit = 'sale.order'
    _description = 'Extended Sale Order'

    approval_state = fields.Selection(
        [('draft', 'Draft'), ('approved', 'Approved')],
        string='Approval State',
        required=True,
    )
    partner_id = fields.Many2one('res.partner', string='Customer', readonly=True)
    note = fields.Text(string='Internal Note')
    amount = fields.Float(compute='_compute_amount')

    @api.depends('order_line.price_total')
    def _compute_amount(self):
        for order in self:
            order.amount = sum(order.order_line.mapped('price_total'))

    def action_approve(self):
        self.approval_state = 'approved'


class Helper(object):
    def not_a_model(self):
        pass
`

func TestParseModelsQualifiedBase(t *testing.T) {
	defs := ParseModels(saleOrderSource, "sale_ext", "models/sale_order.py")
	require.Len(t, defs, 1, "the non-ORM class must be skipped")

	def := defs[0]
	assert.Equal(t, "SaleOrderExt", def.ClassName)
	assert.Equal(t, "sale.order.ext", def.TechnicalName)
	assert.Equal(t, "sale.order", def.Inherit)
	assert.Equal(t, "Extended Sale Order", def.Description)
	assert.Equal(t, "sale_ext", def.Module)
	assert.Equal(t, 4, def.StartLine)
	assert.Greater(t, def.EndLine, def.StartLine)
}

func TestParseModelsFields(t *testing.T) {
	defs := ParseModels(saleOrderSource, "sale_ext", "models/sale_order.py")
	require.Len(t, defs, 1)
	fields := defs[0].Fields
	require.Len(t, fields, 4)

	assert.Equal(t, "approval_state", fields[0].Name)
	assert.Equal(t, "Selection", fields[0].Type)
	assert.Equal(t, "Approval State", fields[0].Label)
	assert.True(t, fields[0].Required)

	assert.Equal(t, "partner_id", fields[1].Name)
	assert.Equal(t, "Many2one", fields[1].Type)
	assert.Equal(t, "res.partner", fields[1].Relation)
	assert.Equal(t, "Customer", fields[1].Label)
	assert.True(t, fields[1].Readonly)

	assert.Equal(t, "note", fields[2].Name)
	assert.Equal(t, "Internal Note", fields[2].Label)
	assert.False(t, fields[2].Required)

	// Non-literal keyword values are ignored, not errors.
	assert.Equal(t, "amount", fields[3].Name)
	assert.Equal(t, "Float", fields[3].Type)
	assert.Empty(t, fields[3].Label)
}

func TestParseModelsMethods(t *testing.T) {
	defs := ParseModels(saleOrderSource, "sale_ext", "models/sale_order.py")
	require.Len(t, defs, 1)
	methods := defs[0].Methods
	require.Len(t, methods, 2)

	assert.Equal(t, "_compute_amount", methods[0].Name)
	assert.Equal(t, []string{"api.depends"}, methods[0].Decorators)
	assert.Greater(t, methods[0].EndLine, methods[0].StartLine)

	assert.Equal(t, "action_approve", methods[1].Name)
	assert.Empty(t, methods[1].Decorators)
}

func TestParseModelsDirectBaseName(t *testing.T) {
	src := `class Wizard(TransientModel):
    _name = 'my.wizard'
`
	defs := ParseModels(src, "m", "wizard.py")
	require.Len(t, defs, 1)
	assert.Equal(t, "my.wizard", defs[0].TechnicalName)
}

func TestParseModelsSkipsUnrecognizedBase(t *testing.T) {
	src := `class Controller(http.Controller):
    _name = 'not.a.model'
`
	defs := ParseModels(src, "m", "controllers/main.py")
	assert.Empty(t, defs)
}

func TestParseModelsInheritList(t *testing.T) {
	src := `class Mixin(models.AbstractModel):
    _inherit = ['mail.thread', 'mail.activity.mixin']
`
	defs := ParseModels(src, "m", "models/mixin.py")
	require.Len(t, defs, 1)
	assert.Equal(t, "mail.thread", defs[0].Inherit)
}

func TestParseModelsAbsentFieldsAreEmpty(t *testing.T) {
	src := `class Bare(models.Model):
    pass
`
	defs := ParseModels(src, "m", "models/bare.py")
	require.Len(t, defs, 1)
	assert.Empty(t, defs[0].TechnicalName)
	assert.Empty(t, defs[0].Inherit)
	assert.Empty(t, defs[0].Description)
	assert.Empty(t, defs[0].Fields)
	assert.Empty(t, defs[0].Methods)
}

func TestIsORMBase(t *testing.T) {
	assert.True(t, IsORMBase("Model"))
	assert.True(t, IsORMBase("models.Model"))
	assert.True(t, IsORMBase("odoo.models.TransientModel"))
	assert.False(t, IsORMBase("http.Controller"))
	assert.False(t, IsORMBase("MyModel"))
	assert.False(t, IsORMBase("object"))
}
